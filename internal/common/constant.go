package common

// AccessTokenHeaderName is the HTTP header carrying the signed access token
// on protected routes.
const AccessTokenHeaderName = "access_token"
