package referenceframe

import "github.com/pkg/errors"

// ErrNoModelInformation is used when a model file is empty.
var ErrNoModelInformation = errors.New("no model information")

// NewMissingIDError is returned when a component has no identifier.
func NewMissingIDError(idx int) error {
	return errors.Errorf("component %d has no id", idx)
}

// NewDuplicateIDError is returned when two components share an identifier.
func NewDuplicateIDError(id string, first, second int) error {
	return errors.Errorf("component id %q is used by components %d and %d", id, first, second)
}

// NewUnsupportedJointTypeError is returned for any joint type other than revolute.
func NewUnsupportedJointTypeError(id string, jointType JointType) error {
	return errors.Errorf("joint %q has unsupported type %q, only %q is supported", id, jointType, Revolute)
}

// NewInvalidLinkLengthError is returned for negative or non-finite link lengths.
func NewInvalidLinkLengthError(id string, length float64) error {
	return errors.Errorf("link %q length %v must be finite and non-negative", id, length)
}

// NewUnknownComponentKindError is returned when a config names a component kind that does not exist.
func NewUnknownComponentKindError(kind string) error {
	return errors.Errorf("unknown component kind %q, expected %q or %q", kind, KindJoint, KindLink)
}
