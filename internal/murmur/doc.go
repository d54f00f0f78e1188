// Package murmur implements MurmurHash64A, the 64-bit non-cryptographic hash
// used to fingerprint build commands.
//
// The digest is persisted in build logs and compared across invocations, so
// the output must stay bit-exact with the reference implementation. Do not
// "improve" the mixing steps.
package murmur
