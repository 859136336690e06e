// Package schema provides the field schema: the ordered set of legal field
// keys with their labels and their classification.
//
// The schema file is YAML and is resolved once, at load time, into a
// Schema that answers every classification question the merge, detection
// and rendering steps ask. Nothing downstream matches key strings ad hoc.
//
// # Schema Overview
//
//	version: "1"
//	application_suffix: _wniosek
//	analysis_suffix: _analiza
//	mirror_prefix: wniosek_
//	petitioner:
//	  title_field: wnioskodawca_title
//	fields:
//	  - key: wnioskodawca_mianownik
//	    label: Wnioskodawca - Mianownik
//	    kind: application_only
//	    case: nominative
//	    required: true
//	  - key: dzialki
//	    label: Numery działek
//	    kind: repeated_group
//	  - key: dzialki_count
//	    kind: derived
//	    group: dzialki
//	    derive: count
//	  - key: data_wykonania_analizy
//	    kind: application_only
//	    format: date
//	  - key: uzasadnienie
//	    long_text: true
//
// # Kinds
//
//   - plain: authored on both sides and compared for discrepancies
//   - application_only: authored once in the application record and mirrored
//     into the analysis record under the mirror prefix
//   - repeated_group: an application-only list collected from base, base_1, ...
//   - derived: an application-only value computed from a repeated group
//     (multiplicity flag or count)
//
// Field order in the file is the order used for discrepancy reports and for
// the field table in rendered documents.
package schema
