package vm

// Consensus limits shared by every instruction set. These are fixed protocol values, not
// configuration.
const (
	MaxBytecodeLength     = 10000
	MaxStackDepth         = 1000
	MaxStackItemLength    = 520
	MaxOperationCount     = 201
	MaxScriptNumberLength = 4
	CheckDataSigMaxOperationCountIncrease = 0
)

// InstructionSet names one of the four BCH consensus rule combinations this VM understands.
// Each is a fixed bundle of four independent booleans; callers select a preset rather than
// assembling the booleans directly, since the valid combinations are a fixed, small set
// defined by BCH upgrade history, not a general configuration surface.
type InstructionSet struct {
	Name string

	// DisallowUpgradableNops fails evaluation if an upgradable NOP (OP_NOP1, OP_NOP4-OP_NOP10)
	// is executed, rather than treating it as a no-op.
	DisallowUpgradableNops bool

	// RequireBugValueZero requires the dummy stack item OP_CHECKMULTISIG consumes (the famous
	// off-by-one) to be exactly an empty array rather than any truthy/falsy value.
	RequireBugValueZero bool

	// RequireMinimalEncoding requires both script numbers and data pushes to use their
	// shortest possible encoding.
	RequireMinimalEncoding bool

	// RequireNullSignatureFailures requires that a failed signature check opcode was given an
	// empty signature, rejecting any non-empty-but-invalid signature outright.
	RequireNullSignatureFailures bool
}

// The four BCH instruction sets this VM supports. The _STRICT variants add the minimal
// encoding and null-signature-failure requirements that later BCH upgrades introduced.
var (
	BCH_2019_05 = InstructionSet{
		Name:                   "BCH_2019_05",
		DisallowUpgradableNops: true,
		RequireBugValueZero:    true,
	}
	BCH_2019_05_STRICT = InstructionSet{
		Name:                         "BCH_2019_05_STRICT",
		DisallowUpgradableNops:       true,
		RequireBugValueZero:          true,
		RequireMinimalEncoding:       true,
		RequireNullSignatureFailures: true,
	}
	BCH_2019_11 = InstructionSet{
		Name:                   "BCH_2019_11",
		DisallowUpgradableNops: true,
		RequireBugValueZero:    true,
	}
	BCH_2019_11_STRICT = InstructionSet{
		Name:                         "BCH_2019_11_STRICT",
		DisallowUpgradableNops:       true,
		RequireBugValueZero:          true,
		RequireMinimalEncoding:       true,
		RequireNullSignatureFailures: true,
	}
)
