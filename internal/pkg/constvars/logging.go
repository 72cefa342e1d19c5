package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingMethodKey      = "method"
	LoggingEndpointKey    = "endpoint"
	LoggingRemoteAddrKey  = "remote_addr"
	LoggingUserAgentKey   = "user_agent"
	LoggingQueryKey       = "query"
	LoggingStatusCodeKey  = "status_code"
	LoggingDurationKey    = "duration"
	LoggingSuccessKey     = "success"
	LoggingCallerIDKey    = "caller_id"
	LoggingCallerRoleKey  = "caller_role"
	LoggingPatientIDKey   = "patient_id"
	LoggingDoctorIDKey    = "doctor_id"
	LoggingEmailKey       = "email"
	LoggingCountKey       = "count"
	LoggingRedisKey       = "redis_key"
	LoggingQueueKey       = "queue"
	LoggingObjectKey      = "object_key"
	LoggingAuditActionKey = "audit_action"
	LoggingLockValueKey   = "lock_value"
	LoggingCronSpecKey    = "cron_spec"
	LoggingServiceKey     = "service"
	LoggingVersionKey     = "version"
)
