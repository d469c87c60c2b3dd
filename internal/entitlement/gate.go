// Package entitlement is the central checkpoint for premium features. All
// gating in the application reduces to a single subscription flag on the
// user; the gate keeps the check in one place so call sites never read the
// flag directly.
package entitlement

import (
	"errors"

	"github.com/orcapro/orcapro/internal/models"
)

// Feature names a gated capability.
type Feature string

const (
	FeaturePhoto     Feature = "item:foto"
	FeatureSignature Feature = "orcamento:assinatura"
	FeatureAdFree    Feature = "pdf:sem_marca"
)

// ErrNotEntitled is returned by Authorize when the user lacks the
// subscription flag for the requested feature.
var ErrNotEntitled = errors.New("not_entitled")

type Gate struct{}

func NewGate() *Gate { return &Gate{} }

// Allows reports whether user may use the feature. A nil user is never
// entitled.
func (g *Gate) Allows(user *models.User, f Feature) bool {
	_ = f // every premium feature rides the same flag today
	return user != nil && user.PlanoPro
}

// Authorize returns ErrNotEntitled instead of a bool, for call sites that
// abort the operation.
func (g *Gate) Authorize(user *models.User, f Feature) error {
	if !g.Allows(user, f) {
		return ErrNotEntitled
	}
	return nil
}
