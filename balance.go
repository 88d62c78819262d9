package xcmbridge

// BalanceSnapshot is the canonical view of an account's holding of one token.
type BalanceSnapshot struct {
	Free      AmountHumanReadable `json:"free"`
	Locked    AmountHumanReadable `json:"locked"`
	Reserved  AmountHumanReadable `json:"reserved"`
	Available AmountHumanReadable `json:"available"`
}

// NewBalanceSnapshot clamps every field at zero and caps available at free.
func NewBalanceSnapshot(free, locked, reserved, available AmountHumanReadable) BalanceSnapshot {
	free = nonNegative(free)
	available = nonNegative(available)
	if available.Cmp(free) > 0 {
		available = free
	}
	return BalanceSnapshot{
		Free:      free,
		Locked:    nonNegative(locked),
		Reserved:  nonNegative(reserved),
		Available: available,
	}
}

func ZeroBalanceSnapshot() BalanceSnapshot {
	return NewBalanceSnapshot(ZeroHuman(), ZeroHuman(), ZeroHuman(), ZeroHuman())
}

func nonNegative(amount AmountHumanReadable) AmountHumanReadable {
	if amount.IsNegative() {
		return ZeroHuman()
	}
	return amount
}
