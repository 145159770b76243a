// ABOUTME: US area-code to state lookup backing the guessState tool
// ABOUTME: Covers the states the deployment operates in plus common neighbors
package web

// stateByAreaCode maps the leading three digits of a canonical US number
// to a state name.
var stateByAreaCode = map[string]string{
	// California
	"209": "California", "213": "California", "310": "California",
	"408": "California", "415": "California", "510": "California",
	"530": "California", "559": "California", "619": "California",
	"650": "California", "661": "California", "707": "California",
	"714": "California", "747": "California", "805": "California",
	"818": "California", "831": "California", "858": "California",
	"909": "California", "916": "California", "925": "California",
	"949": "California", "951": "California",
	// Nevada
	"702": "Nevada", "725": "Nevada", "775": "Nevada",
	// Arizona
	"480": "Arizona", "520": "Arizona", "602": "Arizona",
	"623": "Arizona", "928": "Arizona",
	// Texas
	"210": "Texas", "214": "Texas", "512": "Texas",
	"713": "Texas", "817": "Texas", "832": "Texas", "972": "Texas",
	// Washington
	"206": "Washington", "253": "Washington", "360": "Washington",
	"425": "Washington", "509": "Washington",
	// Oregon
	"458": "Oregon", "503": "Oregon", "541": "Oregon", "971": "Oregon",
	// New York
	"212": "New York", "315": "New York", "516": "New York",
	"518": "New York", "585": "New York", "607": "New York",
	"646": "New York", "716": "New York", "718": "New York",
	"914": "New York", "917": "New York",
	// Florida
	"305": "Florida", "407": "Florida", "561": "Florida",
	"727": "Florida", "786": "Florida", "813": "Florida",
	"850": "Florida", "904": "Florida", "941": "Florida", "954": "Florida",
	// Illinois
	"312": "Illinois", "630": "Illinois", "708": "Illinois",
	"773": "Illinois", "815": "Illinois", "847": "Illinois",
	// Colorado
	"303": "Colorado", "719": "Colorado", "720": "Colorado", "970": "Colorado",
	// Utah
	"385": "Utah", "435": "Utah", "801": "Utah",
}

// guessState resolves a caller's state from a canonical 10-digit number.
// Unknown or short numbers report false.
func guessState(phone string) (string, bool) {
	if len(phone) < 3 {
		return "", false
	}
	state, ok := stateByAreaCode[phone[:3]]
	return state, ok
}
