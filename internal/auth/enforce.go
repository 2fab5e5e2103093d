package auth

import "errors"

var ErrAccessDenied = errors.New("access denied")

// EnforceUserAccess сравнивает личность из токена с user_id из пути запроса.
// Строгое равенство строк, без нормализации.
func EnforceUserAccess(identity *Identity, userID string) error {
	if identity == nil || identity.UserID != userID {
		return ErrAccessDenied
	}
	return nil
}
