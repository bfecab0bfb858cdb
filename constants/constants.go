package constants

// Config
const VerboseEnvVar = "VERBOSE"
const APIHostEnvVar = "POCKET_API_HOST"

// File system
const ConfigDirName = ".pocket"
const ConfigFileName = "config.yml"
const StoreFileName = "store.yml"

// Credential store keys
const StoreKeyAuthToken = "authToken"
const StoreKeyUserID = "userId"
const StoreKeyItemsData = "itemsData"
const StoreKeyItemsDataHash = "itemsDataHash"

// Google Sign-In
const GoogleClientID = "641485831523-m2irjkp22t55iqplj3tos21vpbfneecs.apps.googleusercontent.com"
const GoogleAuthURL = "https://accounts.google.com/o/oauth2/v2/auth"
const GoogleTokenURL = "https://oauth2.googleapis.com/token"

// Error messages
const ErrMsgInternal = "An internal error occurred. If the issue persists, please contact us."
const ErrMsgNotAuthenticated = "Not logged in. You can use `pocket login` to authenticate."
const ErrMsgAuthFailed = "Authentication failed"
const ErrMsgAuthCancelled = "Sign-In Cancelled"
const ErrMsgServerFallback = "Something went wrong"

// Formatting
const DateFormat = "02/01/2006"
const TimeFormat = "2006-01-02 @ 03:04:05pm"
