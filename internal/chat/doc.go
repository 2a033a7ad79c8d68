// Package chat implements the free-text command interpreter.
//
// One utterance flows through four stages: the Matcher classifies it
// into an Intent using an ordered, first-match-wins rule list; the
// Executor resolves device and automation references and applies the
// action; the Responder renders a personality-flavoured reply from a
// phrase pool; and the Dispatcher sequences the stages, serialises
// command processing, and emits state-change notifications after
// successful mutations.
//
// Matching is deliberately not natural-language understanding. It is a
// fixed grammar of patterns ordered by specificity, so a multi-word
// command like "create automation x when time is 7:00 then turn on
// living room light" can never be swallowed by the generic "turn on"
// rule.
package chat
