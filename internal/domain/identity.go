package domain

// Identity is a profile's self-described category.
type Identity string

const (
	IdentityMale       Identity = "male"
	IdentityFemale     Identity = "female"
	IdentityTransWoman Identity = "trans_woman"
	IdentityTransMan   Identity = "trans_man"
	IdentityNonbinary  Identity = "nonbinary"
	IdentityCouple     Identity = "couple"
	IdentityOther      Identity = "other"
)

// Audience is a category of identity a profile declares interest in meeting.
type Audience string

const (
	AudienceWomen           Audience = "women"
	AudienceMen             Audience = "men"
	AudienceTransWomen      Audience = "trans_women"
	AudienceTransMen        Audience = "trans_men"
	AudienceNonbinaryPeople Audience = "nonbinary_people"
	AudienceCouples         Audience = "couples"
	AudienceAny             Audience = "any"
)

// Identities lists every valid identity value.
var Identities = []Identity{
	IdentityMale,
	IdentityFemale,
	IdentityTransWoman,
	IdentityTransMan,
	IdentityNonbinary,
	IdentityCouple,
	IdentityOther,
}

// Audiences lists every valid audience value.
var Audiences = []Audience{
	AudienceWomen,
	AudienceMen,
	AudienceTransWomen,
	AudienceTransMen,
	AudienceNonbinaryPeople,
	AudienceCouples,
	AudienceAny,
}

// identityAudience maps an identity onto the audience category that seeks it.
// The table is exhaustive over Identities.
var identityAudience = map[Identity]Audience{
	IdentityMale:       AudienceMen,
	IdentityFemale:     AudienceWomen,
	IdentityTransWoman: AudienceTransWomen,
	IdentityTransMan:   AudienceTransMen,
	IdentityNonbinary:  AudienceNonbinaryPeople,
	IdentityCouple:     AudienceCouples,
	IdentityOther:      AudienceAny,
}

func (i Identity) Valid() bool {
	_, ok := identityAudience[i]
	return ok
}

// AudienceCategory returns the audience category a profile with this identity
// belongs to. Unknown identities map to the wildcard.
func (i Identity) AudienceCategory() Audience {
	if a, ok := identityAudience[i]; ok {
		return a
	}
	return AudienceAny
}

func (a Audience) Valid() bool {
	for _, known := range Audiences {
		if a == known {
			return true
		}
	}
	return false
}

// AudienceSet is the set of audience categories a profile declares interest in.
type AudienceSet []Audience

// Accepts reports whether the set includes the given category, either
// explicitly or via the wildcard.
func (s AudienceSet) Accepts(category Audience) bool {
	for _, a := range s {
		if a == AudienceAny || a == category {
			return true
		}
	}
	return false
}
