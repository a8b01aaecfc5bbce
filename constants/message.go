package constants

const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_INPUT                = "Invalid input data"
	ERROR_PARSE_DATA_TO_LOCALS = "Cannot read request data"
	DATA_INPUT_IS_NOT_NUMBER   = "Parameter must be a number"
	ERROR_CREATE               = "Create failed"
	ERROR_UPDATE               = "Update failed"
	ERROR_DELETE               = "Delete failed"
	NOT_FOUND_RECORDS          = "Record not found"

	MISSING_LOGIN_INPUT   = "Username and password are required"
	INVALID_USERNAME      = "Username does not exist"
	INVALID_PASSWORD      = "Wrong password"
	USERNAME_EXISTS       = "Username already exists"
	PHONE_NUMBER_EXISTS   = "Phone number already registered"
	ACCOUNT_NOT_ACTIVE    = "Account is blocked"
	CAN_NOT_HASH_PASSWORD = "Cannot hash password"
	UNAUTHORIZED          = "Unauthorized"

	NOT_ADMIN              = "Admin permission required"
	NOT_MODERATOR          = "Moderator permission required"
	NOT_BUILDER            = "Builder permission required"
	ACCOUNT_NOT_PERMISSION = "Account does not have permission"
	CAN_NOT_EDIT_INVENTORY = "Inventory permission required"
	CAN_NOT_PROCESS_CLAIMS = "Sales permission required"
	NEED_VERIFICATION      = "Identity verification required before reserving"

	FLOOR_PLAN_NOT_FOUND    = "Floor plan not found"
	APARTMENT_NOT_FOUND     = "Apartment not found"
	BUILDING_NOT_FOUND      = "Building not found"
	PROJECT_NOT_FOUND       = "Project not found"
	BUILDER_NOT_FOUND       = "Builder not found"
	SESSION_NOT_FOUND       = "Editor session not found"
	INVALID_EDITOR_ACTION   = "Action not allowed in the current editor state"
	INVALID_TRANSITION      = "Status change not allowed"
	PROOF_IMAGE_REQUIRED    = "Proof image is required"
	INVALID_IMAGE           = "Uploaded file is not an image"
	UPLOAD_FAILED           = "Upload failed"
	MANAGER_ALREADY_EXISTS  = "Account is already a manager of this builder"
	REQUEST_ALREADY_PENDING = "A request is already pending"
	CHAT_NOT_FOUND          = "Chat not found"
	CHAT_READ_ONLY          = "You cannot write in this chat"
)
