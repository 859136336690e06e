// Package municipality loads the per-municipality configuration: display
// name, template references per document kind and the header, intro and
// footer texts printed on generated documents.
//
// The file is YAML:
//
//	default: konopnica
//	municipalities:
//	  konopnica:
//	    name: Konopnica
//	    templates:
//	      analysis: konopnica/analysis.xml
//	      decision: konopnica/decision.xml
//	    header: Analiza urbanistyczna - Gmina Konopnica
//	    intro: ...
//	    footer: Urząd Gminy Konopnica
//
// A bare id → entry mapping (the older municipalities.json shape) is
// accepted as well. A Registry is immutable once loaded.
package municipality
