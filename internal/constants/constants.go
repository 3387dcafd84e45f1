package constants

// Centralized constants for headers, env keys and routes.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "GATEFALL_CONFIG"
	EnvDBPath              = "GATEFALL_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "gf_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteWeapons            = "/weapons"
	RouteCombos             = "/combos"
	RouteComboStats         = "/combo-stats"
	RoutePublicBattles      = "/public-battles"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthLogout         = "/auth/logout"
	RoutePlayerStats        = "/player-stats"
	RouteBattles            = "/battles"
	RouteBattlesJoin        = "/battles/join"
	RouteBattleByCode       = "/battles/:battleCode"
	RouteBattleLog          = "/battles/:battleCode/log"
	RouteBattleStart        = "/battles/:battleCode/start"
	RouteBattleEnd          = "/battles/:battleCode/end"
	RouteTurnEnd            = "/battles/:battleCode/end-turn"
	RouteWeaponUse          = "/battles/:battleCode/weapon-use"
	RouteDamagePreview      = "/battles/:battleCode/preview"
	RouteComboInterrupt     = "/battles/:battleCode/interrupt"
	RouteComboProgress      = "/battles/:battleCode/combo-progress"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest    = "Invalid request"
	ErrMissingGoogleEnv  = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidBattleID   = "Invalid battle ID"
	ErrBattleNotFound    = "Battle not found"
	ErrFailedFetchBattles    = "Failed to fetch battles"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedEncodeBattle     = "Failed to encode battle"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedFetchCombatLog   = "Failed to fetch combat log"

	ErrFailedCreateBattle   = "Failed to create battle"
	ErrBattleNameExceeds    = "Battle name exceeds 32 characters"
	ErrDescriptionExceeds   = "Description exceeds 256 characters"
	ErrBattleFull           = "Battle is full"
	ErrFailedUpdateBattle   = "Failed to update battle"
	ErrFailedEndBattle      = "Failed to end battle"
	ErrPlayerNotInBattle    = "Player not in this battle"
	ErrBattleNotInProgress  = "Battle is not in progress"
	ErrUnknownWeapon        = "Unknown weapon"
	ErrNoActionsLeft        = "No actions left this turn"
	ErrComboNotFound        = "Combo attempt not found"
	ErrComboNotInterruptible = "Combo cannot be interrupted"
	ErrFailedRecordUse      = "Failed to record weapon use"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldBattleID  = "battle_id"
	LogFieldTurn      = "turn_index"
	LogFieldCombo     = "combo"
	LogFieldWeapon    = "weapon"
	LogFieldTarget    = "target"
	LogFieldName      = "name"
	LogFieldKey       = "key"
	LogFieldAddr      = "addr"
	LogFieldReason    = "reason"
)
