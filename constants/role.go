package constants

const (
	ROLE_BUYER     = "BUYER"
	ROLE_BUILDER   = "BUILDER"
	ROLE_MANAGER   = "MANAGER"
	ROLE_MODERATOR = "MODERATOR"
	ROLE_ADMIN     = "ADMIN"
)

var ROLE = []string{ROLE_BUYER, ROLE_BUILDER, ROLE_MANAGER, ROLE_MODERATOR, ROLE_ADMIN}

const (
	ACCOUNT_ACTIVE  = "ACTIVE"
	ACCOUNT_BLOCKED = "BLOCKED"
)

const (
	REQUEST_PENDING  = "PENDING"
	REQUEST_APPROVED = "APPROVED"
	REQUEST_REJECTED = "REJECTED"
)

const (
	VERIFICATION_BASIC    = "BASIC"
	VERIFICATION_PENDING  = "PENDING"
	VERIFICATION_VERIFIED = "VERIFIED"

	BUILDER_APP_NONE     = "NONE"
	BUILDER_APP_PENDING  = "PENDING"
	BUILDER_APP_APPROVED = "APPROVED"
)

const (
	CHAT_COMMUNITY = "COMMUNITY"
	CHAT_SUPPORT   = "SUPPORT"
)
