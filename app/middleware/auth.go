package appMiddleware

type contextKey string

const UserIDKey contextKey = "userID"
const UserEmailKey contextKey = "userEmail"
const UserNameKey contextKey = "userName"
