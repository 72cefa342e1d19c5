package constvars

type ContextKey string

const (
	MongoCollectionUsers    = "users"
	MongoCollectionPatients = "patients"
	MongoCollectionSessions = "sessions"
)

const (
	ResourceAuth     = "auth"
	ResourcePatients = "patients"
	ResourceDoctors  = "doctors"
	ResourceReports  = "reports"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_CALLER_KEY               ContextKey = "caller"
	CONTEXT_NATIVE_EMAIL_KEY         ContextKey = "native_email"
	CONTEXT_SESSION_TOKEN_KEY        ContextKey = "session_token"
)

const (
	ServiceName       = "sleepclinic-service"
	REQUEST_ID_PREFIX = "SLPCLN_SVC_"
)

const (
	RedisKeySessionTokenFormat = "session:token:%s"
	RedisKeySessionIDFormat    = "session:id:%s"
	RedisKeySessionEmailFormat = "session:email:%s"

	LimiterGroupLoginAttempt = "LOGIN_ATTEMPT"
)

const (
	SessionTokenLength  = 48
	DateLayoutYYYYMMDD  = "2006-01-02"
	TopDiagnosesLimit   = 5
	GenderUnspecified   = "unspecified"
	ConsentObjectPrefix = "patients/%s/consent_%s%s"

	ConsentMultipartMemoryInBytes = 8 << 20
)

const (
	PermissionDoctorList         = "doctor:list"
	PermissionDoctorCreate       = "doctor:create"
	PermissionDoctorToggleStatus = "doctor:toggle_status"
	PermissionPatientCreate      = "patient:create"
	PermissionReportRead         = "report:read"
)

const (
	AuditEntityPatient = "patient"
	AuditEntityDoctor  = "doctor"
	AuditEntitySession = "session"
	AuditEntityUser    = "user"

	AuditActionCreate       = "create"
	AuditActionUpdate       = "update"
	AuditActionDelete       = "delete"
	AuditActionToggleStatus = "toggle_status"
	AuditActionConsent      = "upload_consent"
	AuditActionLogin        = "login"
	AuditActionLogout       = "logout"
	AuditActionRegister     = "register"
)
