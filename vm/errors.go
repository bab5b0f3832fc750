package vm

// ErrorKind enumerates every way a program can fail evaluation. It is a string rather than a
// plain Go error so it can be compared, logged, and serialized as a stable consensus-relevant
// value rather than a wrapped error.
type ErrorKind string

const (
	ErrorNone ErrorKind = ""

	ErrorExceededMaximumBytecodeLengthUnlocking ErrorKind = "exceeded-maximum-bytecode-length-unlocking"
	ErrorExceededMaximumBytecodeLengthLocking   ErrorKind = "exceeded-maximum-bytecode-length-locking"
	ErrorMalformedUnlockingBytecode             ErrorKind = "malformed-unlocking-bytecode"
	ErrorMalformedLockingBytecode               ErrorKind = "malformed-locking-bytecode"
	ErrorRequiresPushOnly                       ErrorKind = "unlocking-bytecode-requires-push-only"
	ErrorEmptyStack                             ErrorKind = "empty-stack"
	ErrorNonEmptyExecutionStack                 ErrorKind = "non-empty-execution-stack"
	ErrorUnsuccessfulEvaluation                 ErrorKind = "unsuccessful-evaluation"

	ErrorMalformedP2shBytecode ErrorKind = "malformed-p2sh-bytecode"

	ErrorExceededMaximumOperationCount ErrorKind = "exceeded-maximum-operation-count"
	ErrorExceededMaximumStackDepth     ErrorKind = "exceeded-maximum-stack-depth"
	ErrorExceededMaximumPushLength     ErrorKind = "exceeded-maximum-push-length"
	ErrorExceededMaximumScriptNumberLength ErrorKind = "exceeded-maximum-script-number-length"

	ErrorUnknownOpcode          ErrorKind = "unknown-opcode"
	ErrorDisallowedOpcode       ErrorKind = "disallowed-opcode"
	ErrorInvalidStackIndex      ErrorKind = "invalid-stack-index"
	ErrorInsufficientStackItems ErrorKind = "insufficient-stack-items"
	ErrorInvalidScriptNumber    ErrorKind = "invalid-script-number"
	ErrorNonMinimallyEncodedNumber ErrorKind = "non-minimally-encoded-number"
	ErrorNonMinimallyEncodedPush  ErrorKind = "non-minimally-encoded-push"
	ErrorUnmatchedElseOrEndIf   ErrorKind = "unmatched-else-or-endif"
	ErrorUnexpectedEndOfScript  ErrorKind = "unexpected-end-of-script"
	ErrorReturn                 ErrorKind = "op-return"
	ErrorVerify                 ErrorKind = "op-verify-failed"
	ErrorEqualVerify             ErrorKind = "op-equalverify-failed"
	ErrorNumEqualVerify           ErrorKind = "op-numequalverify-failed"
	ErrorCheckSigVerify          ErrorKind = "op-checksigverify-failed"
	ErrorCheckDataSigVerify      ErrorKind = "op-checkdatasigverify-failed"
	ErrorCheckMultiSigVerify     ErrorKind = "op-checkmultisigverify-failed"
	ErrorCheckLockTimeVerify     ErrorKind = "op-checklocktimeverify-failed"
	ErrorCheckSequenceVerify     ErrorKind = "op-checksequenceverify-failed"
	ErrorInvalidNaturalNumber    ErrorKind = "invalid-natural-number"
	ErrorExceedsMaximumMultisigPublicKeyCount ErrorKind = "exceeds-maximum-multisig-public-key-count"
	ErrorInvalidSignatureEncoding ErrorKind = "invalid-signature-encoding"
	ErrorInvalidPublicKeyEncoding ErrorKind = "invalid-public-key-encoding"
	ErrorSignatureEncodingBugValue ErrorKind = "signature-encoding-bug-value"
	ErrorUnsupportedOperation      ErrorKind = "unsupported-operation"
	ErrorDivisionByZero            ErrorKind = "division-by-zero"
	ErrorInvalidSplitIndex         ErrorKind = "invalid-split-index"
	ErrorExceededMaximumBytesToEncode ErrorKind = "exceeded-maximum-bytes-to-encode"
	ErrorCannotEncodeInsufficientBytes ErrorKind = "cannot-encode-in-insufficient-bytes"
	ErrorUpgradableNop ErrorKind = "upgradable-nop-used"
)
