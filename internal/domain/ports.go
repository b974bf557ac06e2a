package domain

// PasswordHasher hashea y verifica contraseñas. La contraseña plana nunca se persiste.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}
