// Package record builds the application and analysis records of a case from
// a form submission, and projects stored records back onto form inputs.
//
// Merge applies, in order:
//
//   - application-side values: application-only fields are written under the
//     mirror prefix into both records, other fields unprefixed into the
//     application record; date fields are localized on the way
//   - analysis-side values: written unprefixed into the analysis record,
//     except application-only fields which are discarded
//   - repeated groups: joined value and derived flag/count into both records
//   - petitioner: honorific composed with the nominative and genitive name
//     fragments
//
// Unmerge is the reverse projection used when a saved case is loaded back
// into the form, so that Merge(Unmerge(Merge(s))) == Merge(s).
package record
