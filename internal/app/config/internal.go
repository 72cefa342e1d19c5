package config

type InternalConfig struct {
	App            App
	NativeIdentity AppNativeIdentity
	Minio          AppMinio
	RabbitMQ       AppRabbitMQ
}

type App struct {
	Env                                      string
	Port                                     string
	Version                                  string
	Timezone                                 string
	EndpointPrefix                           string
	AllowedOrigins                           []string
	MaxRequests                              int
	ShutdownTimeoutInSeconds                 int
	MaxTimeRequestsPerSeconds                int
	RequestBodyLimitInMegabyte               int
	LoginSessionExpiredTimeInHours           int
	SessionCacheTTLInMinutes                 int
	SessionSweeperCronSpec                   string
	LoginRevealInactiveAccount               bool
	LoginMaxAttemptsPerMinute                int
	LoginMaxAttemptsPerEmail                 int
	LoginAttemptWindowInMinutes              int
	MinioPreSignedUrlObjectExpiryTimeInHours int
	ConsentMaxUploadSizeInMB                 int64
}

// AppNativeIdentity verifies bearer tokens minted by the hosting platform.
type AppNativeIdentity struct {
	JWTSecret string
}

type AppMinio struct {
	BucketName string
}

type AppRabbitMQ struct {
	AuditQueue string
}
