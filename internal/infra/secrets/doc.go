// Package secrets seals CLI credentials at rest.
//
// A REST token stored in the config file can be protected with a
// passphrase. The passphrase is stretched with Argon2id and the token is
// sealed with an AEAD cipher chosen per hardware:
//
//   - AES-256-GCM when hardware AES support is available
//   - ChaCha20-Poly1305 otherwise
//
// Sealed values are self-describing strings:
//
//	$sealed$v1$<cipher>$<salt>$<ciphertext>
//
// so Open works regardless of which cipher the sealing host picked.
package secrets
