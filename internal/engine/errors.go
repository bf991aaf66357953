package engine

import (
	"errors"
	"fmt"
)

// ErrorCategory 错误类别，调用方凭类别区分"永远不允许"和"现在还不允许"
type ErrorCategory string

const (
	CategoryValidation    ErrorCategory = "validation"    // 参数错误
	CategoryNotFound      ErrorCategory = "not_found"     // 记录不存在
	CategoryAuthorization ErrorCategory = "authorization" // 调用方角色不符
	CategoryState         ErrorCategory = "state"         // 活动状态不允许
	CategoryFinancial     ErrorCategory = "financial"     // 资金约束不满足
	CategoryTransfer      ErrorCategory = "transfer"      // 外部转账失败，整个操作已回滚
)

// EngineError 引擎错误，携带稳定的错误码
type EngineError struct {
	Code     string
	Category ErrorCategory
	Message  string
	Cause    error
}

// Error 实现 error 接口
func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 支持 errors.Unwrap
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Is 按错误码匹配，包装了底层原因的错误仍能命中哨兵值
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(code string, category ErrorCategory, message string) *EngineError {
	return &EngineError{Code: code, Category: category, Message: message}
}

// 错误消息沿用合约的 revert 文案
var (
	ErrInvalidCampaignParameters = newError("INVALID_CAMPAIGN_PARAMETERS", CategoryValidation, "Invalid campaign parameters")
	ErrEmptyTitle                = newError("EMPTY_TITLE", CategoryValidation, "Title cannot be empty")
	ErrTitleTooLong              = newError("TITLE_TOO_LONG", CategoryValidation, "Title too long")
	ErrDescriptionTooShort       = newError("DESCRIPTION_TOO_SHORT", CategoryValidation, "Description too short")
	ErrInvalidFundingGoal        = newError("INVALID_FUNDING_GOAL", CategoryValidation, "Funding goal must be greater than 0")
	ErrInvalidDuration           = newError("INVALID_DURATION", CategoryValidation, "Duration must be between 1 and 365 days")
	ErrInvalidContributionBounds = newError("INVALID_CONTRIBUTION_BOUNDS", CategoryValidation, "Min contribution cannot exceed max contribution")
	ErrInvalidMilestonePlan      = newError("INVALID_MILESTONE_PLAN", CategoryValidation, "Milestone percentages cannot exceed 100%")

	ErrCampaignNotFound = newError("CAMPAIGN_NOT_FOUND", CategoryNotFound, "Campaign does not exist")

	ErrNotCreator = newError("NOT_CREATOR", CategoryAuthorization, "Only creator can withdraw")
	ErrNotOwner   = newError("NOT_OWNER", CategoryAuthorization, "Only platform owner can update fee")

	ErrCampaignNotActive           = newError("CAMPAIGN_NOT_ACTIVE", CategoryState, "Campaign is not active")
	ErrCampaignNotSuccessful       = newError("CAMPAIGN_NOT_SUCCESSFUL", CategoryState, "Campaign is not successful")
	ErrFinalizationNotDue          = newError("FINALIZATION_NOT_DUE", CategoryState, "Campaign cannot be finalized yet")
	ErrAlreadyFinalized            = newError("ALREADY_FINALIZED", CategoryState, "Campaign already finalized")
	ErrCannotCancelAfterResolution = newError("CANNOT_CANCEL_AFTER_RESOLUTION", CategoryState, "Cannot cancel a resolved campaign")
	ErrRefundsNotAvailable         = newError("REFUNDS_NOT_AVAILABLE", CategoryState, "Refunds not available")

	ErrInvalidContribution        = newError("INVALID_CONTRIBUTION", CategoryFinancial, "Contribution must be greater than 0")
	ErrCreatorCannotContribute    = newError("CREATOR_CANNOT_CONTRIBUTE", CategoryFinancial, "Creator cannot contribute to own campaign")
	ErrBelowMinimum               = newError("BELOW_MINIMUM", CategoryFinancial, "Below minimum contribution")
	ErrAboveMaximum               = newError("ABOVE_MAXIMUM", CategoryFinancial, "Above maximum contribution")
	ErrAlreadyWithdrawn           = newError("ALREADY_WITHDRAWN", CategoryFinancial, "Funds already withdrawn")
	ErrMilestoneIndexOutOfRange   = newError("MILESTONE_INDEX_OUT_OF_RANGE", CategoryFinancial, "Invalid milestone index")
	ErrMilestoneAlreadyReleased   = newError("MILESTONE_ALREADY_RELEASED", CategoryFinancial, "Milestone already released")
	ErrMilestoneSequenceViolation = newError("MILESTONE_SEQUENCE_VIOLATION", CategoryFinancial, "Milestones must be released in order")
	ErrNoContributionToRefund     = newError("NO_CONTRIBUTION_TO_REFUND", CategoryFinancial, "No contribution to refund")
	ErrFeeExceedsCap              = newError("FEE_EXCEEDS_CAP", CategoryFinancial, "Fee cannot exceed 5%")

	ErrTransferFailed = newError("TRANSFER_FAILED", CategoryTransfer, "Transfer failed")
)

// transferFailed 包装外部转账错误，errors.Is(err, ErrTransferFailed) 仍成立
func transferFailed(cause error) *EngineError {
	return &EngineError{
		Code:     ErrTransferFailed.Code,
		Category: CategoryTransfer,
		Message:  ErrTransferFailed.Message,
		Cause:    cause,
	}
}

// CategoryOf 返回错误的类别，非引擎错误归为 transfer 之外的未知类别
func CategoryOf(err error) ErrorCategory {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Category
	}
	return ""
}
