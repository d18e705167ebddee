package scene

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"nodegraph/internal/geom"
)

var validate = validator.New()

// NodeStyle sizes a node. A zero Width or Height leaves the matching
// dimension of the creation bounds untouched.
//
//	field          default  legacy
//	HeaderHeight   10       20
//	Width          50       0
//	Height         50       0
//	CornerRadius   5        5
type NodeStyle struct {
	HeaderHeight float64 `toml:"header_height" validate:"gte=0"`
	Width        float64 `toml:"width" validate:"gte=0"`
	Height       float64 `toml:"height" validate:"gte=0"`
	CornerRadius float64 `toml:"corner_radius" validate:"gte=0"`
}

// DefaultNodeStyle returns the documented node defaults.
func DefaultNodeStyle() NodeStyle {
	return NodeStyle{HeaderHeight: 10, Width: 50, Height: 50, CornerRadius: 5}
}

// LegacyNodeStyle returns the earlier style: a taller header and no size
// override, so nodes keep the bounds they were created with.
func LegacyNodeStyle() NodeStyle {
	return NodeStyle{HeaderHeight: 20, CornerRadius: 5}
}

// Validate checks the field constraints of the style.
func (s NodeStyle) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStyle, describe(err))
	}
	return nil
}

// PortStyle sizes the circular hit region of newly created ports.
type PortStyle struct {
	Size float64 `toml:"size" validate:"gt=0"`
}

// DefaultPortStyle returns a 10 unit port.
func DefaultPortStyle() PortStyle {
	return PortStyle{Size: 10}
}

// Shape returns the local bounding shape for a port of this style.
func (s PortStyle) Shape() geom.Rect {
	return geom.R(0, 0, s.Size, s.Size)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return fmt.Sprintf("%s must be %s %s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
}
