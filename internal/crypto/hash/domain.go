package hash

// Domain-separation tags. Every KDF/MAC call in this tree is tagged with one
// of these so that outputs for distinct purposes are computationally
// independent even when the input keying material is identical. Tags are
// versioned ASCII strings; a changed tag is a wire-incompatible protocol
// revision, so new uses allocate a new tag or a new version suffix rather
// than reusing one.
const (
	DomainFileEnc              = "tallow.file.encryption.v1"
	DomainChatEnc              = "tallow.chat.encryption.v1"
	DomainAuth                 = "tallow.authentication.v1"
	DomainKDF                  = "tallow.kdf.v1"
	DomainKEM                  = "tallow.kem.v1"
	DomainSig                  = "tallow.signature.v1"
	DomainPake                 = "tallow.pake.v1"
	DomainRatchet              = "tallow.ratchet.v1"
	DomainMetadata             = "tallow.metadata.v1"
	DomainChunk                = "tallow.chunk.v1"
	DomainHeader               = "tallow.header.v1"
	DomainNonce                = "tallow.nonce.v1"
	DomainKeyConfirm           = "tallow.key_confirmation.v1"
	DomainPrekeySig            = "tallow.prekey.signature.v1"
	DomainEphemeral            = "tallow.ephemeral.v1"
	DomainRoom                 = "tallow.room.v1"
	DomainHybridCombine        = "tallow.hybrid.combine.v1"
	DomainPassword             = "tallow.password.v1"
	DomainSAS                  = "tallow.sas.v1"
	DomainHandshakeTranscript  = "tallow.handshake.transcript.v1"
	DomainSessionKeyKemPake    = "tallow.session_key.kem_pake.v3"
	DomainKeyConfirmSender     = "tallow.key_confirm.sender.v1"
	DomainKeyConfirmReceiver   = "tallow.key_confirm.receiver.v1"
)
