// Package cookie manages HTTP cookies with HMAC signing, AES-256-GCM encryption
// and one-time flash values.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//		return err
//	}
//	_ = m.SetSigned(w, "userId", id)
//	_ = m.SetEncrypted(w, "accessToken", token, cookie.WithMaxAge(86400))
//	token, err := m.GetEncrypted(r, "accessToken")
//
// Several secrets may be configured. The first one signs and encrypts, every
// one of them is tried when verifying, which allows rotating keys without
// logging everybody out.
package cookie
