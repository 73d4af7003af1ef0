/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns a single configuration object, stored under the key
"_c:<package name>". The initial value is loaded from the genesis file
(app_state.conf.<package name>) and later changes are applied by a message
carrying a patch of the configuration, authorized by the configuration owner.

Unlike a process level configuration, the stored value is part of the state:
all nodes see the same value at the same height, and a change applies to all
subsequent transactions.
*/
package gconf
