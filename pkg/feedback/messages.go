package feedback

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MessageKey names a kind of validation outcome. String returns the key
// exactly as the feedback pane and tests expect it.
type MessageKey int

const (
	None MessageKey = iota
	PFDNotConnected
	EquationDoesntMatchPFD
	MissingEquation
	Solvable
	NotIndependent
	InvalidHeatEquation
	UnknownConstant
	IncorrectAbbrv
	IncorrectUseOfPercent
	InconsistantUnits
	EquationVariableNotInTables
	NotOverall
	MoreThanOneCompound
	CompoundNotUsed
	MoreThanOneElement
	InsufficientInformation
	NonUniqueNames
	OverallFlowrateMismatch
	OverallUnitsMismatch
	MissingIncomingCompounds
	MissingOutgoingCompounds
	IndividualFlowrateMismatch
	NotInMoles
	IncomingOutgoingStreamsMismatch
	IncorrectTemperature
	SumDoesNotEqualTotalQuantity

	lastKey = SumDoesNotEqualTotalQuantity
)

type message struct {
	key      string
	text     string
	severity Severity
}

var messages = map[MessageKey]message{
	None:                        {"", "", Info},
	PFDNotConnected:             {"PFD_not_connected", "One or more process units or streams are not connected to the rest of the PFD.  Please make sure everything is connected properly and delete any unnecessary process units or streams", Error},
	EquationDoesntMatchPFD:      {"Equation_doesnt_match_PFD", "The equation does not match the PFD, or it is in a format that cannot be recognized, try to re-write it", Error},
	MissingEquation:             {"Missing_equation", "There are more independent equations that you can write at this level of abstraction", Warning},
	Solvable:                    {"Solvable", "Congratulations! The set of equations that you have created is solvable", Info},
	NotIndependent:              {"Not_Independent", "The set of equations that you have created is NOT solvable.\nThe equations that you have written are not independent of each other", Error},
	InvalidHeatEquation:         {"InValid_Heat_Equation", "This heat equation is not in a valid format.  The valid format is Enthalpy equals Q or Sum of Enthalpy in equals Sum of Enthalpy out. Enthalpy must be written as Hf?? + Cp?? * Temp - 25 * moles, where the ?? is the abbreviation of the current compound", Error},
	UnknownConstant:             {"Unknown_Constant", "The constant(s) used in this equation have no actual value and cannot be used", Error},
	IncorrectAbbrv:              {"Incorrect_Abbrv", "The abbreviation %s does not match the compound used or another abbreviation", Error},
	IncorrectUseOfPercent:       {"Incorrect_Use_Of_Percent", "Improper use of percentages in the equation.  Percentages must appear in equations in the following format: the row label / 100 * overall label for that table.  Example: m11 / 100 * M1", Error},
	InconsistantUnits:           {"Inconsistant_Units", "The units: \"%s\" and \"%s\" where used together, which is invalid", Error},
	EquationVariableNotInTables: {"Equation_Variable_Not_In_Tables", "The following terms are undefined: %s", Error},
	NotOverall:                  {"Not_Overall", "This equation is not a summation of the overalls.  Only the overall row can be used in this equation", Error},
	MoreThanOneCompound:         {"More_Than_One_Compound", "This material balance must contain only one compound.  The compound expect was %s, but the compound found was %s", Error},
	CompoundNotUsed:             {"Compound_Not_Used", "The compound that was expected was not used", Error},
	MoreThanOneElement:          {"More_Than_One_Element", "This material balance must contain only one element.  The element expect was %s, but the compound %s was found which does not contain the specified element", Error},
	InsufficientInformation:     {"Insuffcient_infomation", "Insufficient information to check", Warning},
	NonUniqueNames:              {"NonUniqueNames", "These labels appear more than once: %s.  Each label name may appear only once", Error},

	OverallFlowrateMismatch:         {"Overall_Flowrate_Mismatch", "Overall mass balance across the process unit connected to this stream is not satisfied.  Make sure that the quantities of all incoming and outgoing streams match", Error},
	OverallUnitsMismatch:            {"Overall_Units_Mismatch", "The overall units of the streams connected to this process unit are not the same.  Make sure that all incoming and outgoing streams use the same units", Error},
	MissingIncomingCompounds:        {"Missing_Incoming_Compounds", "Incoming stream(s) contains %s which is (are) NOT specified in the outgoing stream(s).  Make sure that every compound that enters a processing unit also leaves that unit", Error},
	MissingOutgoingCompounds:        {"Missing_Outgoing_Compounds", "Outgoing stream(s) contains %s which is (are) NOT specified in the incoming stream(s).  Make sure that every compound that leaves a processing unit also enters that unit", Error},
	IndividualFlowrateMismatch:      {"Individual_Flowrate_Mismatch", "Overall mass balance is satisfied.  One or more of the individual mass balances across the processing unit attached to this stream are NOT satisfied.  Check the amount of each compound entering and leaving the process unit.", Error},
	NotInMoles:                      {"Not_In_Moles", "Units going to and from a reactor must be in moles or moles per second", Error},
	IncomingOutgoingStreamsMismatch: {"Incoming_Outgoing_Streams_Mismatch", "Streams that enter and leave a heat exchanger must exactly match except for temperature", Error},
	IncorrectTemperature:            {"InCorrect_Temperature", "The temperature of an outgoing stream must be in the range of the temperatures of the incoming streams", Error},
	SumDoesNotEqualTotalQuantity:    {"Sum_Does_Not_Equal_Total_Quantity", "The sum of the quantities of all individual compounds is not equal to the quantity of the overall stream, or 100%.  Make sure that the quantities of all individual compounds add up to the quantity of overall stream, or 100%", Error},
}

// Keys lists every reportable key in declaration order
func Keys() []MessageKey {
	keys := make([]MessageKey, 0, len(messages)-1)
	for k := PFDNotConnected; k <= lastKey; k++ {
		keys = append(keys, k)
	}
	return keys
}

func (k MessageKey) String() string {
	if m, ok := messages[k]; ok {
		return m.key
	}
	return fmt.Sprintf("MessageKey(%d)", int(k))
}

// Severity is Info for Solvable, Warning for keys asking for more input and
// Error otherwise.
func (k MessageKey) Severity() Severity {
	return messages[k].severity
}

// ParseMessageKey is the inverse of String
func ParseMessageKey(s string) (MessageKey, error) {
	for k, m := range messages {
		if k != None && m.key == s {
			return k, nil
		}
	}
	return None, fmt.Errorf("feedback: unknown message key %q", s)
}

// Render fills the key's text. Keys listing names join every argument;
// the others take positional arguments.
func (k MessageKey) Render(args ...string) string {
	m, ok := messages[k]
	if !ok {
		return ""
	}
	n := strings.Count(m.text, "%s")
	switch {
	case n == 0:
		return m.text
	case n == 1:
		return fmt.Sprintf(m.text, strings.Join(args, ", "))
	default:
		vals := make([]any, n)
		for i := range vals {
			if i < len(args) {
				vals[i] = args[i]
			} else {
				vals[i] = "?"
			}
		}
		return fmt.Sprintf(m.text, vals...)
	}
}

func (k MessageKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *MessageKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*k = None
		return nil
	}
	parsed, err := ParseMessageKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseSeverity is the inverse of Severity.String
func ParseSeverity(s string) (Severity, error) {
	for _, sev := range []Severity{Info, Warning, Error} {
		if sev.String() == s {
			return sev, nil
		}
	}
	return Info, fmt.Errorf("feedback: unknown severity %q", s)
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
