package checker

import (
	"strings"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

// renderChainError describes a reverse dependency chain whose includes are
// being used by chain[len-1] while not all edges are public.
func renderChainError(chain Chain) string {
	var b strings.Builder
	b.WriteString("The target:\n  ")
	b.WriteString(chain[len(chain)-1].Target.Label.String())
	b.WriteString("\nis including a file from the target:\n  ")
	b.WriteString(chain[0].Target.Label.String())
	b.WriteString("\n")

	b.WriteString("\nIt's usually best to depend directly on the destination target.\n" +
		"In some cases, the destination target is considered a subcomponent\n" +
		"of an intermediate target. In this case, the intermediate target\n" +
		"should depend publicly on the destination to forward the ability\n" +
		"to include headers.\n" +
		"\n" +
		"Dependency chain (there may also be others):\n")

	for i := len(chain) - 1; i >= 0; i-- {
		b.WriteString("  ")
		b.WriteString(chain[i].Target.Label.String())
		if i != 0 {
			// Mark private edges so the user can see where in the chain
			// things went bad. The first hop is never marked: direct
			// dependencies are fine either way, and flagging one as
			// private reads like something that needs fixing.
			if i == len(chain)-1 || chain[i-1].IsPublic {
				b.WriteString(" -->")
			} else {
				b.WriteString(" --[private]-->")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// makeUnreachableError builds the diagnostic for an include whose file is
// claimed by known targets, none of which is reachable from the includer.
func (c *Checker) makeUnreachableError(
	file domain.SourceFile,
	contents []byte,
	inc ports.Include,
	fromTarget *domain.Target,
	claims []targetInfo,
) *domain.CheckError {
	// The toolchains normally all match, but cross-compiling can put
	// candidates from several toolchains in the claim list.
	var matchingToolchain []*domain.Target
	var otherToolchains []*domain.Target
	for _, claim := range claims {
		if claim.target.Label.ToolchainsEqual(fromTarget.Label) {
			matchingToolchain = append(matchingToolchain, claim.target)
		} else {
			otherToolchains = append(otherToolchains, claim.target)
		}
	}

	// The same target often appears once per toolchain. Listing each copy
	// confuses people more than it helps, so drop other-toolchain
	// candidates that duplicate a same-toolchain one.
	otherToolchains = dropToolchainDuplicates(otherToolchains, matchingToolchain)

	// Qualify labels with toolchains only if more than one is displayed.
	includeToolchain := len(otherToolchains) > 0

	var b strings.Builder
	b.WriteString("It is not in any dependency of\n  ")
	b.WriteString(fromTarget.Label.UserVisibleName(includeToolchain))
	b.WriteString("\nThe include file is in the target(s):\n")
	for _, t := range matchingToolchain {
		b.WriteString("  " + t.Label.UserVisibleName(includeToolchain) + "\n")
	}
	for _, t := range otherToolchains {
		b.WriteString("  " + t.Label.UserVisibleName(includeToolchain) + "\n")
	}
	if len(matchingToolchain)+len(otherToolchains) > 1 {
		b.WriteString("at least one of ")
	}
	b.WriteString("which should somehow be reachable.\n")
	b.WriteString("This might be a false alarm if you are using conditional includes;\n" +
		"annotate such an include to suppress the check.")

	return &domain.CheckError{
		Kind:  domain.Unreachable,
		Where: c.persistentRange(file, contents, inc),
		Title: "Include not allowed.",
		Body:  b.String(),
	}
}

// dropToolchainDuplicates removes candidates from other toolchains whose
// (directory, name) also appears in the same-toolchain list.
func dropToolchainDuplicates(others, matching []*domain.Target) []*domain.Target {
	kept := others[:0]
	for _, other := range others {
		duplicate := false
		for _, m := range matching {
			if m.Label.MatchesExceptToolchain(other.Label) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, other)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
