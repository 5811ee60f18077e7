package auth

// Claims es la identidad del dueño que hace el request.
// Email es informativo (logs); la pertenencia de mascotas se decide por UserID.
type Claims struct {
	UserID string
	Email  string
}
