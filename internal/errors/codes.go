// Package errors provides machine-readable error codes for the campaign
// and live-game engine.
package errors

import (
	"errors"

	campaigndomain "github.com/trench-tools/trenchmate/internal/campaign/domain"
	gamedomain "github.com/trench-tools/trenchmate/internal/gamesession/domain"
	gameservice "github.com/trench-tools/trenchmate/internal/gamesession/service"
	postgamedomain "github.com/trench-tools/trenchmate/internal/postgame/domain"
	postgameservice "github.com/trench-tools/trenchmate/internal/postgame/service"
	rosterdomain "github.com/trench-tools/trenchmate/internal/roster/domain"
	"github.com/trench-tools/trenchmate/internal/storage"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Campaign errors
	CodeCampaignEmptyWarbandID   Code = "CAMPAIGN_EMPTY_WARBAND_ID"
	CodeCampaignPostGamePending  Code = "CAMPAIGN_POST_GAME_PENDING"
	CodeCampaignInvalidResult    Code = "CAMPAIGN_INVALID_RESULT"
	CodeCampaignNegativeAmount   Code = "CAMPAIGN_NEGATIVE_AMOUNT"
	CodeCampaignInsufficientFund Code = "CAMPAIGN_INSUFFICIENT_FUNDS"

	// Roster errors
	CodeRosterMemberDead      Code = "ROSTER_MEMBER_DEAD"
	CodeRosterMemberNotActive Code = "ROSTER_MEMBER_NOT_ACTIVE"

	// Post-game errors
	CodePostGameStepNotReachable  Code = "POST_GAME_STEP_NOT_REACHABLE"
	CodePostGameStepsIncomplete   Code = "POST_GAME_STEPS_INCOMPLETE"
	CodePostGameCompleted         Code = "POST_GAME_COMPLETED"
	CodePostGameNoPromotionDice   Code = "POST_GAME_NO_PROMOTION_DICE"
	CodePostGameFieldStrengthCap  Code = "POST_GAME_FIELD_STRENGTH_CAP"
	CodePostGameTemplateCap       Code = "POST_GAME_TEMPLATE_CAP"
	CodePostGameNoPending         Code = "POST_GAME_NO_PENDING"
	CodePostGameCasualtiesUnroll  Code = "POST_GAME_CASUALTIES_UNROLLED"
	CodePostGameTraumaDoubleRoll  Code = "POST_GAME_TRAUMA_ALREADY_ROLLED"
	CodePostGameCasualtyUnchosen  Code = "POST_GAME_CASUALTY_NOT_SELECTED"
	CodePostGameEquipmentMissing  Code = "POST_GAME_EQUIPMENT_NOT_HELD"

	// Game session errors
	CodeSessionActiveExists    Code = "SESSION_ACTIVE_EXISTS"
	CodeSessionEnded           Code = "SESSION_ENDED"
	CodeSessionUnknownModel    Code = "SESSION_UNKNOWN_MODEL"
	CodeSessionToughNotOffered Code = "SESSION_TOUGH_NOT_OFFERED"
	CodeSessionNothingToUndo   Code = "SESSION_NOTHING_TO_UNDO"
	CodeSessionNothingToRedo   Code = "SESSION_NOTHING_TO_REDO"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// CodeOf maps an error chain to its machine-readable code. Unmapped
// errors report CodeUnknown.
func CodeOf(err error) Code {
	for _, m := range codeMap {
		if errors.Is(err, m.err) {
			return m.code
		}
	}
	return CodeUnknown
}

var codeMap = []struct {
	err  error
	code Code
}{
	{storage.ErrNotFound, CodeNotFound},
	{storage.ErrActiveSessionExists, CodeSessionActiveExists},

	{campaigndomain.ErrEmptyWarbandID, CodeCampaignEmptyWarbandID},
	{campaigndomain.ErrPostGamePending, CodeCampaignPostGamePending},
	{campaigndomain.ErrInvalidResult, CodeCampaignInvalidResult},
	{campaigndomain.ErrNegativeAmount, CodeCampaignNegativeAmount},
	{campaigndomain.ErrInsufficientFunds, CodeCampaignInsufficientFund},

	{rosterdomain.ErrMemberDead, CodeRosterMemberDead},
	{rosterdomain.ErrMemberNotActive, CodeRosterMemberNotActive},

	{postgamedomain.ErrStepNotReachable, CodePostGameStepNotReachable},
	{postgamedomain.ErrSessionCompleted, CodePostGameCompleted},
	{postgamedomain.ErrCasualtiesUnrolled, CodePostGameCasualtiesUnroll},
	{postgameservice.ErrNoPendingPostGame, CodePostGameNoPending},
	{postgameservice.ErrCasualtyNotSelected, CodePostGameCasualtyUnchosen},
	{postgameservice.ErrTraumaAlreadyRolled, CodePostGameTraumaDoubleRoll},
	{postgameservice.ErrNoPromotionDice, CodePostGameNoPromotionDice},
	{postgameservice.ErrFieldStrengthReached, CodePostGameFieldStrengthCap},
	{postgameservice.ErrModelLimitReached, CodePostGameTemplateCap},
	{postgameservice.ErrEquipmentNotHeld, CodePostGameEquipmentMissing},
	{postgameservice.ErrStepsIncomplete, CodePostGameStepsIncomplete},

	{gamedomain.ErrSessionEnded, CodeSessionEnded},
	{gamedomain.ErrUnknownModel, CodeSessionUnknownModel},
	{gamedomain.ErrToughNotOffered, CodeSessionToughNotOffered},
	{gameservice.ErrNothingToUndo, CodeSessionNothingToUndo},
	{gameservice.ErrNothingToRedo, CodeSessionNothingToRedo},
}
