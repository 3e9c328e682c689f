package skill

// Name is one entry of the fixed skill catalogue shared by student skills and
// job requirements.
type Name string

const (
	Java       Name = "Java"
	Python     Name = "Python"
	CCpp       Name = "C / C++"
	JavaScript Name = "JavaScript"
	MERNStack  Name = "MERN Stack"
	FullStack  Name = "Full Stack"
	Frontend   Name = "Frontend Developer"
	Backend    Name = "Backend Developer"
	DSA        Name = "DSA"
	Database   Name = "Database (MongoDB, MySQL)"
)

var catalogue = []Name{Java, Python, CCpp, JavaScript, MERNStack, FullStack, Frontend, Backend, DSA, Database}

func All() []Name {
	out := make([]Name, len(catalogue))
	copy(out, catalogue)
	return out
}

func IsValid(s string) bool {
	for _, n := range catalogue {
		if string(n) == s {
			return true
		}
	}
	return false
}

// Invalid returns the entries of names outside the catalogue.
func Invalid(names []string) []string {
	var bad []string
	for _, n := range names {
		if !IsValid(n) {
			bad = append(bad, n)
		}
	}
	return bad
}
