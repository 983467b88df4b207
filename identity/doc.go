// Package identity resolves the named credentials used to authenticate endpoint
// connections.
//
// An identity is an Ed25519 key stored as PKCS#8 PEM under
// <base>/<name>/identity.pem (loaded through afs, so any afs supported URL works).
// Connections present the identity as a short lived EdDSA JWT bearer token; the token
// embeds the public key so the endpoint can derive the caller principal without a
// key registry.
package identity
