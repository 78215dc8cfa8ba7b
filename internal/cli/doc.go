// Package cli is StudyMate's interactive terminal client: a REPL over the
// auth gateway, the session store and the AI client.
//
// Navigation, the chat transcript and unsaved profile drafts live in memory
// only and are reset on logout or restart. Everything else goes through the
// session store.
//
// Commands when signed out:
//
//	signup | login | forgot | lang <ar|en> | help | exit
//
// Commands when signed in:
//
//	home | profile | updates | go <feature>
//	chat | summarize [path] | test [path] | plan | research [topic]
//	major [value] | save | cancel | lang <ar|en> | logout | help | exit
package cli
