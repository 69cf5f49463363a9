// Package onboarding stores the first-run questionnaire: display name, taste
// scores, favorite base spirit and preferred occasions.
//
// Preferences are only read back when the completion flag holds "true".
// Complete, Update and Reset write straight to the adapter and wait for the
// result, unlike favorites which go through the background writer.
package onboarding
