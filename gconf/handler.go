package gconf

import (
	"reflect"

	"github.com/heirloom-labs/heirloom"
	"github.com/heirloom-labs/heirloom/errors"
	"github.com/heirloom-labs/heirloom/x"
)

// OwnedConfig is a configuration with an owner. A configuration update
// message must be signed by the owner in order to be authorized to apply the
// change.
type OwnedConfig interface {
	Configuration
	GetOwner() heirloom.Address
}

// UpdateConfigurationHandler applies a configuration patch. The message must
// be a pointer to a struct with a Patch field holding a configuration of the
// same type as the stored one. Zero value fields of the patch leave the
// stored value unchanged.
type UpdateConfigurationHandler struct {
	pkg       string
	newConfig func() OwnedConfig
	auth      x.Authenticator
	initAdmin func(heirloom.ReadOnlyKVStore) (heirloom.Address, error)
}

var _ heirloom.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a message handler that processes a
// configuration patch message. newConfig must return an empty instance of the
// configuration type.
//
// When the configuration does not exist yet, nobody owns it and so nobody
// could create it. initConfAdmin, if provided, names the address allowed to
// create it. Once a configuration exists only its owner may change it.
func NewUpdateConfigurationHandler(
	pkg string,
	newConfig func() OwnedConfig,
	auth x.Authenticator,
	initConfAdmin func(heirloom.ReadOnlyKVStore) (heirloom.Address, error),
) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:       pkg,
		newConfig: newConfig,
		auth:      auth,
		initAdmin: initConfAdmin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.CheckResult, error) {
	if _, err := h.applyTx(ctx, store, tx); err != nil {
		return nil, err
	}
	return &heirloom.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (*heirloom.DeliverResult, error) {
	conf, err := h.applyTx(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	heirloom.GetLogger(ctx).Info("configuration updated", "package", h.pkg, "owner", conf.GetOwner())
	return &heirloom.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx heirloom.Context, store heirloom.KVStore, tx heirloom.Tx) (OwnedConfig, error) {
	config := h.newConfig()
	switch err := Load(store, h.pkg, config); {
	case err == nil:
		owner := config.GetOwner()
		if owner == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "configuration without owner cannot be changed")
		}
		if !h.auth.HasAddress(ctx, owner) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
		}
	case errors.ErrNotFound.Is(err):
		if h.initAdmin == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "configuration does not exist and cannot be initialized")
		}
		admin, err := h.initAdmin(store)
		if err != nil {
			return nil, errors.Wrap(err, "get init admin")
		}
		if !h.auth.HasAddress(ctx, admin) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "initialization admin signature required")
		}
	default:
		return nil, errors.Wrap(err, "load current configuration")
	}

	payload, err := patchPayload(tx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(config, payload); err != nil {
		return nil, errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(store, h.pkg, config); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	return config, nil
}

// patch copies every non zero field of payload into config.
func patch(config, payload OwnedConfig) error {
	if reflect.TypeOf(payload) != reflect.TypeOf(config) {
		return errors.Wrapf(errors.ErrMsg, "patch of type %T cannot be applied to %T", payload, config)
	}
	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()
	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)
		if isZero(got) {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}

// patchPayload expects the transaction to have a message with a "Patch"
// field of the configuration type. Content of this field is extracted and
// returned.
func patchPayload(tx heirloom.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() {
		return nil, errors.Wrapf(errors.ErrType, "%T has no Patch field", msg)
	}
	if field.Kind() != reflect.Ptr || field.IsNil() {
		return nil, errors.Wrap(errors.ErrEmpty, `"Patch" field is required`)
	}
	payload, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrap(errors.ErrType, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}
