// Package authcard implements an embeddable authentication card: one widget
// presenting the login, signup, forgot-password, reset-password and logout
// views, coordinating form submission against an external authentication
// backend and navigating away once the session reports an authenticated
// user. Hosts supply the backend handle, navigation, localized strings and
// an optional notification sink; rendering lives in the cardui package and
// an echo integration in echocard.
package authcard
