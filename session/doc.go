// Package session implements the editing contracts behind object and
// collection editors.
//
// An ObjectSession owns a working copy of one object. Editors change it with
// Set or SetText and finish with Accept or Reject; accept hooks and
// validation can keep the session open. A CollectionSession wraps a
// collection.Manager and turns button presses (add, edit, remove, clear,
// move_up, move_down) into manager mutations, opening an ObjectSession for
// add and edit and asking for confirmation before destructive commands.
//
// Sessions never block on their own. RunObjectSession and
// RunCollectionSession loop over an editor or driver supplied by the caller,
// such as the survey-backed one in package tui:
//
//	objs, ok, err := session.RunCollectionSession(ctx, m, session.CollectionHooks{}, prompts, driver)
//
// Messages shown to the user come from package i18n.
package session
