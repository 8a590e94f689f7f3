package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Scenario is a parsed script: a named, ordered list of steps.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one DSL call.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadScenarioFromFile runs a Lua script that must return a Scenario.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := runChunk(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// LoadScenario runs Lua source that must return a Scenario. name labels the
// chunk and is the fallback scenario name.
func LoadScenario(name, source string) (*Scenario, error) {
	state := newState()
	if err := lua.LoadBuffer(state, source, name, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := runChunk(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = name
	}
	return scenario, nil
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)
	return state
}

func runChunk(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "target", Function: scenarioTarget},
	{Name: "expect_flag", Function: scenarioExpectFlag},
	{Name: "expect_sequences", Function: scenarioExpectSequences},
	{Name: "expect_member", Function: scenarioExpectMember},
	{Name: "dispatch", Function: scenarioDispatch},
	{Name: "expect_steps", Function: scenarioExpectSteps},
	{Name: "expect_state", Function: scenarioExpectState},
}

// Every method returns the scenario so calls can be chained.

func scenarioTarget(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	appendStep(scenario, "target", map[string]any{"name": name})
	state.PushValue(1)
	return 1
}

func scenarioExpectFlag(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "expect_flag", map[string]any{"value": checkInt(state, 2)})
	state.PushValue(1)
	return 1
}

func scenarioExpectSequences(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "expect_sequences", map[string]any{"value": checkInt(state, 2)})
	state.PushValue(1)
	return 1
}

func scenarioExpectMember(state *lua.State) int {
	scenario := checkScenario(state)
	id := checkInt(state, 2)
	member := true
	if !state.IsNoneOrNil(3) {
		lua.CheckType(state, 3, lua.TypeBoolean)
		member = state.ToBoolean(3)
	}
	appendStep(scenario, "expect_member", map[string]any{"id": id, "member": member})
	state.PushValue(1)
	return 1
}

func scenarioDispatch(state *lua.State) int {
	scenario := checkScenario(state)
	data := optionalTable(state, 4)
	data["id"] = checkInt(state, 2)
	data["opcode"] = checkInt(state, 3)
	appendStep(scenario, "dispatch", data)
	state.PushValue(1)
	return 1
}

func scenarioExpectSteps(state *lua.State) int {
	scenario := checkScenario(state)
	data := map[string]any{"value": checkInt(state, 2)}
	if !state.IsNoneOrNil(3) {
		data["id"] = checkInt(state, 3)
	}
	appendStep(scenario, "expect_steps", data)
	state.PushValue(1)
	return 1
}

func scenarioExpectState(state *lua.State) int {
	scenario := checkScenario(state)
	key := lua.CheckString(state, 2)
	appendStep(scenario, "expect_state", map[string]any{"key": key, "value": checkInt(state, 3)})
	state.PushValue(1)
	return 1
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func checkInt(state *lua.State, index int) int {
	value := lua.CheckNumber(state, index)
	if math.Mod(value, 1) != 0 {
		lua.ArgumentError(state, index, "integer expected")
	}
	return int(value)
}

func appendStep(scenario *Scenario, kind string, data map[string]any) int {
	if scenario == nil {
		return -1
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
	return len(scenario.Steps) - 1
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToMap(state, index)
	default:
		return nil
	}
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
