// Package tui runs object and collection editing sessions in a terminal.
//
// Prompts go through a PromptDriver; NewSurveyDriver is the terminal-backed
// implementation and tests substitute a scripted one. Editor implements
// session.ObjectEditor and CollectionDriver implements
// session.CollectionDriver on top of the same driver, and Prompts adapts it
// to session.Prompts for warnings and confirmations.
package tui
