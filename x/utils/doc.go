/*
Package utils provides decorators and helpers shared by all extensions:
panic recovery, logging, savepoints that make every transaction atomic and
a reentrancy guard for mutating entry points.
*/
package utils
