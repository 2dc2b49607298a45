// Package auth implements a credential and session core: bcrypt password
// hashing and verification, HMAC-signed JWT issuance and validation, a
// credential authenticator that turns (email, password) pairs into bearer
// tokens, and HTTP middleware that gates protected routes.
//
// Components take explicit dependencies (store, token service, logger) at
// construction; nothing is resolved through ambient globals. Tokens are
// stateless: validity is purely a function of signature and expiry, so the
// server keeps no session state and rotating the signing key invalidates
// every outstanding token.
//
// The user store is a collaborator behind the Users interface. The bundled
// implementation rides on Bun; email uniqueness is enforced by the backing
// unique index, which is what serializes concurrent registrations for the
// same address.
package auth
