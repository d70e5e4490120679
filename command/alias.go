package command

import "git.sr.ht/~caraway/nettle/symtab"

// resolveAlias implements §4.5/§3.4's command-alias map lookup: a
// CmdAlias entry's Words become a fixed argv prefix ahead of the
// caller's own arguments (`alias ll='ls -la'` then `ll /tmp` runs
// `ls -la /tmp`). A CmdDecl entry (a user-declared shell function,
// §GLOSSARY) has no textual expansion here — it is resolved by the
// symbol table's ordinary function lookup at the call site, not by the
// command subsystem, so it passes through unchanged.
func resolveAlias(e *symtab.CmdEntry, origName string, args []string) (string, []string) {
	if len(e.Words) == 0 {
		return origName, args
	}
	name := e.Words[0]
	prefix := e.Words[1:]
	return name, append(append([]string{}, prefix...), args...)
}
