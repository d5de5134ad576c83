package erdkit

import "strings"

// inferRelationships runs the two-pass cardinality analysis over the full
// model set. Emission order is the order relation-bearing fields are
// encountered during a left-to-right scan of model declarations; the second
// pass upgrades cardinality in place and never reorders, so output order is a
// pure function of input declaration order.
func inferRelationships(models []Model) []Relationship {
	rels := extractRelationships(models)
	upgradeJunctions(models, rels)

	for i := range rels {
		if rels[i].DisplayLabel == "" {
			rels[i].DisplayLabel = labelFor(&rels[i])
		}
	}

	return rels
}

// extractRelationships is pass 1: one directional record per relation-bearing
// field, with cardinality decided by local syntax alone. Enum references are
// relation-bearing for classification but are not edges; only fields typed as
// a model reference are emitted.
func extractRelationships(models []Model) []Relationship {
	var rels []Relationship

	for _, m := range models {
		for _, f := range m.Fields {
			if f.Kind != KindModelReference {
				continue
			}

			r := Relationship{
				SourceModel:       m.Name,
				SourceField:       f.Name,
				TargetModel:       f.TypeName,
				ForeignKeyColumns: f.RelationFields,
				ReferencedColumns: f.RelationReferences,
			}

			switch {
			case f.IsList:
				r.Cardinality = OneToMany
			case len(f.RelationFields) > 0:
				r.Cardinality = ManyToOne
			default:
				r.Cardinality = OneToOne
			}

			rels = append(rels, r)
		}
	}

	return rels
}

// upgradeJunctions is pass 2: junction-table detection and the many-to-many
// upgrade. A relationship that points at a junction's collection is relinked
// as many-to-many through it, even when the opposite side is not visible.
func upgradeJunctions(models []Model, rels []Relationship) {
	junctions := detectJunctions(models)

	for i := range rels {
		r := &rels[i]

		targets, ok := junctions[r.TargetModel]
		if !ok || r.Cardinality != OneToMany {
			continue
		}

		r.Cardinality = ManyToMany
		r.Via = r.TargetModel
		r.DisplayLabel = manyToManyLabel(r.SourceModel, targets, r.Via)
	}
}

// detectJunctions classifies junction tables. A model qualifies iff it has at
// least two foreign-key fields and its relation-bearing fields reference at
// least two distinct other models through explicit foreign-key declarations.
// The returned map carries the referenced model names in declaration order.
func detectJunctions(models []Model) map[string][]string {
	junctions := make(map[string][]string)

	for _, m := range models {
		fkCount := 0
		for _, f := range m.Fields {
			if f.IsForeignKey {
				fkCount++
			}
		}

		if fkCount < 2 {
			continue
		}

		var targets []string

		seen := make(map[string]bool)
		for _, f := range m.Fields {
			if f.Kind != KindModelReference || len(f.RelationFields) == 0 {
				continue
			}

			if f.TypeName == m.Name || seen[f.TypeName] {
				continue
			}

			seen[f.TypeName] = true
			targets = append(targets, f.TypeName)
		}

		if len(targets) >= 2 {
			junctions[m.Name] = targets
		}
	}

	return junctions
}

func labelFor(r *Relationship) string {
	switch r.Cardinality {
	case OneToOne:
		return "one-to-one"
	case OneToMany:
		return "one-to-many"
	case ManyToOne:
		return "many-to-one"
	case ManyToMany:
		return "many-to-many (via " + r.Via + ")"
	default:
		return string(r.Cardinality)
	}
}

// manyToManyLabel names the far side of the junction when it can be resolved:
// the junction's referenced models minus the source itself.
func manyToManyLabel(source string, junctionTargets []string, via string) string {
	var others []string

	for _, t := range junctionTargets {
		if t != source {
			others = append(others, t)
		}
	}

	if len(others) == 0 {
		return "many-to-many (via " + via + ")"
	}

	return "many-to-many with " + strings.Join(others, ", ") + " (via " + via + ")"
}
