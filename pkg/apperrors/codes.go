package apperrors

type ErrorCode string

const (
	CodeUnauthenticated      ErrorCode = "UNAUTHENTICATED"
	CodeNotFound             ErrorCode = "NOT_FOUND"
	CodePlanNotFound         ErrorCode = "PLAN_NOT_FOUND"
	CodeInvalidRequest       ErrorCode = "INVALID_REQUEST"
	CodeGatewayMisconfigured ErrorCode = "GATEWAY_MISCONFIGURED"
	CodeGatewayRejected      ErrorCode = "GATEWAY_REJECTED"
	CodeGatewayUnreachable   ErrorCode = "GATEWAY_UNREACHABLE"
	CodeNotDeployed          ErrorCode = "NOT_DEPLOYED"
	CodeStoreUnavailable     ErrorCode = "STORE_UNAVAILABLE"
)
