package constants

const (
	//分頁
	DefaultPagingSize int = 12
	DefaultPaging     int = 1
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer string     = "bearer"
	PrincipalKey            ContextKey = "principal"
	RequestIDKey            ContextKey = "request_id"
)

const (
	// AccessTokenDuration access token有效時數(hr)
	AccessTokenDuration = 24
)
