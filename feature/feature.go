/*
Package feature defines the values observed on a record: the vote cast on
each issue and the party label the record carries.
*/
package feature

import "fmt"

/*
Vote represents the observation of a record on an issue. It holds the raw
token byte read from the input, so that tokens other than the three known
ones survive parsing and can be told apart with Valid.
*/
type Vote byte

const (
	// Aye is a vote in favour of an issue
	Aye Vote = '+'
	// Nay is a vote against an issue
	Nay Vote = '-'
	// Abstain is the lack of a vote on an issue
	Abstain Vote = '.'
)

/*
Votes holds the three recognized vote values in branch order: Aye, Nay and
Abstain.
*/
var Votes = [...]Vote{Aye, Nay, Abstain}

/*
Valid returns whether the vote is one of Aye, Nay or Abstain.
*/
func (v Vote) Valid() bool {
	return v == Aye || v == Nay || v == Abstain
}

/*
Index returns the position of the vote in Votes, or -1 for an unrecognized
vote.
*/
func (v Vote) Index() int {
	for i, vv := range Votes {
		if vv == v {
			return i
		}
	}
	return -1
}

func (v Vote) String() string {
	return string(rune(v))
}

/*
Name returns a readable name for the vote.
*/
func (v Vote) Name() string {
	switch v {
	case Aye:
		return "aye"
	case Nay:
		return "nay"
	case Abstain:
		return "abstain"
	}
	return fmt.Sprintf("unrecognized(%q)", rune(v))
}

/*
ParseVotes takes a token with one character per issue and returns the
votes in it. Unrecognized characters are kept as they are.
*/
func ParseVotes(token string) []Vote {
	votes := make([]Vote, len(token))
	for i := 0; i < len(token); i++ {
		votes[i] = Vote(token[i])
	}
	return votes
}

/*
FormatVotes is the inverse of ParseVotes.
*/
func FormatVotes(votes []Vote) string {
	b := make([]byte, len(votes))
	for i, v := range votes {
		b[i] = byte(v)
	}
	return string(b)
}

/*
Party is the class label of a record. Only two parties exist; NoParty is the
zero value for records whose label maps to neither of them.
*/
type Party byte

const (
	// NoParty is the label of a record that belongs to no known party
	NoParty Party = iota
	// PartyA is the first of the two classes
	PartyA
	// PartyB is the second of the two classes. It wins ties.
	PartyB
)

func (p Party) String() string {
	switch p {
	case PartyA:
		return "A"
	case PartyB:
		return "B"
	}
	return "?"
}

/*
ParseParty is the inverse of Party's String method. Any string other than
"A" or "B" yields NoParty.
*/
func ParseParty(s string) Party {
	switch s {
	case "A":
		return PartyA
	case "B":
		return PartyB
	}
	return NoParty
}

/*
Labels maps the label tokens found in input files to parties.
*/
type Labels struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

/*
DefaultLabels are the tokens used by the voting records the tool was built
for: D for PartyA and R for PartyB.
*/
var DefaultLabels = Labels{A: "D", B: "R"}

/*
Party returns the party for the given label token, or NoParty if the token
is neither of the labels.
*/
func (l Labels) Party(token string) Party {
	switch token {
	case l.A:
		return PartyA
	case l.B:
		return PartyB
	}
	return NoParty
}

/*
Token returns the label token for the given party. NoParty is rendered as
"?".
*/
func (l Labels) Token(p Party) string {
	switch p {
	case PartyA:
		return l.A
	case PartyB:
		return l.B
	}
	return "?"
}
