package discovery

// Preference and exclusion rules. The repository encodes the same rules in
// SQL so candidate pages arrive pre-filtered; these predicates are the
// canonical definition and what the tests exercise.

// GendersCompatible reports whether two users are mutually admissible by
// gender and gender interest. Compatibility must hold in both directions:
// the candidate matches the requester's interest and the requester matches
// the candidate's interest, with "everyone" as a wildcard on either side.
func GendersCompatible(requester, candidate *UserProfile) bool {
	return interestAccepts(requester.GenderInterest, candidate.Gender) &&
		interestAccepts(candidate.GenderInterest, requester.Gender)
}

func interestAccepts(interest, gender string) bool {
	return interest == InterestEveryone || interest == gender
}

// InteractionExcludes reports whether a prior interaction disqualifies the
// candidate. Approved interactions exclude unconditionally (already matched).
// Rejected interactions exclude until the candidate updates their photos,
// which earns them another chance with a fresh impression.
func InteractionExcludes(rec *InteractionRecord) bool {
	if rec == nil {
		return false
	}

	switch rec.Status {
	case StatusApproved:
		return true
	case StatusRejected:
		return !rec.CandidatePhotosUpdated
	default:
		return false
	}
}

// HasProfileImage reports whether the profile carries at least one image
// flagged as the profile photo, a hard eligibility gate for discovery.
func HasProfileImage(p *UserProfile) bool {
	for _, img := range p.Images {
		if img.Flag == "profile" {
			return true
		}
	}
	return false
}
