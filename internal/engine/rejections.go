package engine

import (
	"fmt"

	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// Rejection reasons. A rejected command leaves the state untouched.
const (
	ReasonNodeNotFound            errors.Reason = "NODE_NOT_FOUND"
	ReasonPrerequisiteNotMet      errors.Reason = "PREREQUISITE_NOT_MET"
	ReasonInsufficientSkillPoints errors.Reason = "INSUFFICIENT_SKILL_POINTS"
	ReasonInsufficientInvestment  errors.Reason = "INSUFFICIENT_INVESTMENT"
	ReasonAbilityBudgetExceeded   errors.Reason = "ABILITY_BUDGET_EXCEEDED"
	ReasonAbilityOutOfRange       errors.Reason = "ABILITY_OUT_OF_RANGE"
	ReasonLevelOutOfRange         errors.Reason = "LEVEL_OUT_OF_RANGE"
	ReasonArmorOutOfRange         errors.Reason = "ARMOR_OUT_OF_RANGE"
	ReasonHPOutOfRange            errors.Reason = "HP_OUT_OF_RANGE"
	ReasonTraitNotFound           errors.Reason = "TRAIT_NOT_FOUND"
	ReasonInvalidChoice           errors.Reason = "INVALID_CHOICE"
	ReasonInvalidInventoryItem    errors.Reason = "INVALID_INVENTORY_ITEM"
	ReasonItemNotFound            errors.Reason = "ITEM_NOT_FOUND"
)

var rejectionCodes = map[errors.Reason]errors.Code{
	ReasonNodeNotFound:            errors.CodeNotFound,
	ReasonPrerequisiteNotMet:      errors.CodeFailedPrecondition,
	ReasonInsufficientSkillPoints: errors.CodeResourceExhausted,
	ReasonInsufficientInvestment:  errors.CodeFailedPrecondition,
	ReasonAbilityBudgetExceeded:   errors.CodeResourceExhausted,
	ReasonAbilityOutOfRange:       errors.CodeOutOfRange,
	ReasonLevelOutOfRange:         errors.CodeOutOfRange,
	ReasonArmorOutOfRange:         errors.CodeOutOfRange,
	ReasonHPOutOfRange:            errors.CodeOutOfRange,
	ReasonTraitNotFound:           errors.CodeNotFound,
	ReasonInvalidChoice:           errors.CodeInvalidArgument,
	ReasonInvalidInventoryItem:    errors.CodeInvalidArgument,
	ReasonItemNotFound:            errors.CodeNotFound,
}

// IsRejection reports whether err is an expected command rejection rather
// than a failure.
func IsRejection(err error) bool {
	_, ok := rejectionCodes[errors.GetReason(err)]
	return ok
}

func reject(reason errors.Reason, format string, args ...any) *errors.Error {
	code, ok := rejectionCodes[reason]
	if !ok {
		code = errors.CodeInvalidArgument
	}
	return errors.New(code, fmt.Sprintf(format, args...)).WithReason(reason)
}
