package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":           "is required",
	"email":              "must be a valid email",
	"min":                "must be at least %s characters long",
	"max":                "maximum at %s characters long",
	"password":           "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"numeric":            "must be a number",
	"oneof":              "must be one of [%s]",
	"gt":                 "must be greater than %s",
	"gte":                "must be greater than or equal to %s",
	"lt":                 "must be less than %s",
	"lte":                "must be less than or equal to %s",
	"datetime":           "must be a date in %s format",
	"object_id":          "must be a valid identifier",
	"object_id_or_empty": "must be a valid identifier or empty",
	"required_with":      "is required when %s is present",
	"excluded_with":      "must be empty when %s is present",
	"required_if":        "is required when %s is %s",
	"omitempty":          "is invalid",
	"visit_date":         "must be a date in YYYY-MM-DD format",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":           true,
	"max":           true,
	"gt":            true,
	"gte":           true,
	"lt":            true,
	"lte":           true,
	"oneof":         true,
	"datetime":      true,
	"required_with": true,
	"excluded_with": true,
	"required_if":   true,
}

// Error messages for clients
const (
	ErrClientNotAuthenticated              = "Not authenticated"
	ErrClientAuthenticationFailed          = "Authentication failed"
	ErrClientInvalidEmailOrPassword        = "Invalid email or password"
	ErrClientAccountInactive               = "Account is inactive"
	ErrClientEmailAlreadyExists            = "Email already in use"
	ErrClientPatientNotFound               = "Patient not found"
	ErrClientDoctorNotFound                = "Doctor not found"
	ErrClientNotAuthorizedCreatePatient    = "Not authorized to create this patient"
	ErrClientNotAuthorizedUpdatePatient    = "Not authorized to update this patient"
	ErrClientNotAuthorizedDeletePatient    = "Not authorized to delete this patient"
	ErrClientNotAuthorizedViewPatient      = "Not authorized to view this patient"
	ErrClientNotAuthorizedAssignDoctor     = "Not authorized to assign this doctor"
	ErrClientNotAuthorizedManageDoctor     = "Not authorized to manage this doctor"
	ErrClientNotAuthorizedCreateDoctor     = "Not authorized to create doctors"
	ErrClientConsentDocumentNotFound       = "Consent document not found"
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidFileFormat             = "the file you uploaded does not meet the specified standards"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientTooManyRequests               = "too many requests, you are blocked temporarily"
)

// Error messages for developers
const (
	ErrDevInvalidInput                 = "invalid input"
	ErrDevCannotParseJSON              = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON            = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm     = "cannot parse multipart form body"
	ErrDevInvalidFormat                = "invalid %s format"
	ErrDevFailedToHashPassword         = "failed to hash password"
	ErrDevInvalidCredentials           = "invalid credentials"
	ErrDevAccountInactive              = "login attempted on an inactive account"
	ErrDevServerProcess                = "server failed to process the request"
	ErrDevServerDeadlineExceeded       = "server deadline exceeded"
	ErrDevURLParamIDValidationFailed   = "parameter %s validation failed"
	ErrDevQueryParamValidationFailed   = "query parameter %s validation failed"
	ErrDevValidationFailed             = "validation failed"
	ErrDevFileValidationFailed         = "file validation failed"
	ErrDevEmailAlreadyExists           = "email already exists"
	ErrDevPatientNotExists             = "patient not exists in our system"
	ErrDevDoctorNotExists              = "doctor not exists in our system"
	ErrDevConsentDocumentNotExists     = "patient has no consent document key"
	ErrDevAuthCallerUnresolved         = "no resolvable caller identity for mutation"
	ErrDevAuthPermissionDenied         = "permission denied: %s"
	ErrDevAuthGenerateToken            = "failed to generate session token"
	ErrDevAuthSigningMethod            = "unexpected signing method"
	ErrDevAuthNativeIdentityInvalid    = "native identity token is invalid"
	ErrDevAuthNativeIdentityEmailClaim = "native identity token has no email claim"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed when do delete document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBFailedToAggregate        = "failed when running aggregation on database"
	ErrDevDBFailedToCreateIndex      = "failed to create index on collection %s"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"

	// Minio messages
	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"
	ErrDevMinioFailedToRemoveObject          = "failed to remove object from minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue %s"
)
