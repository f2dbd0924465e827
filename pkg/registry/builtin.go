package registry

// Stock widget type names.
const (
	TypeText       = "TEXT_WIDGET"
	TypeInput      = "INPUT_WIDGET"
	TypeButton     = "BUTTON_WIDGET"
	TypeTable      = "TABLE_WIDGET"
	TypeDropDown   = "DROP_DOWN_WIDGET"
	TypeCheckbox   = "CHECKBOX_WIDGET"
	TypeDatePicker = "DATE_PICKER_WIDGET"
	TypeRadioGroup = "RADIO_GROUP_WIDGET"
	TypeImage      = "IMAGE_WIDGET"
	TypeContainer  = "CONTAINER_WIDGET"
	TypeCanvas     = "CANVAS_WIDGET"
)

// Builtin returns a registry preloaded with the stock widget types.
func Builtin() *Registry {
	reg := New()
	for _, ct := range builtinTypes() {
		reg.Register(ct)
	}
	return reg
}

func builtinTypes() []ComponentType {
	return []ComponentType{
		{Type: TypeText},
		{Type: TypeButton},
		{Type: TypeImage},
		{Type: TypeContainer},
		{Type: TypeCanvas},
		{
			Type: TypeInput,
			MetaProperties: map[string]any{
				"text":      nil,
				"isFocused": false,
				"isDirty":   false,
			},
			DerivedProperties: map[string]string{
				"isValid": "{{this.isRequired ? this.text && this.text.length > 0 : true}}",
				"value":   "{{this.text}}",
			},
		},
		{
			Type: TypeTable,
			MetaProperties: map[string]any{
				"pageNo":           1,
				"selectedRowIndex": -1,
				"searchText":       "",
			},
			DerivedProperties: map[string]string{
				"selectedRow": "{{this.selectedRowIndex === -1 ? {} : this.tableData[this.selectedRowIndex]}}",
			},
		},
		{
			Type: TypeDropDown,
			MetaProperties: map[string]any{
				"selectedOptionValue":  nil,
				"selectedOptionValues": []any{},
			},
			DerivedProperties: map[string]string{
				"selectedOption":  "{{this.options.find(o => o.value === this.selectedOptionValue)}}",
				"selectedOptions": "{{this.options.filter(o => this.selectedOptionValues.includes(o.value))}}",
				"isValid":         "{{this.isRequired ? !!this.selectedOptionValue : true}}",
			},
		},
		{
			Type: TypeCheckbox,
			MetaProperties: map[string]any{
				"isChecked": false,
			},
			DerivedProperties: map[string]string{
				"value": "{{this.isChecked}}",
			},
		},
		{
			Type: TypeDatePicker,
			MetaProperties: map[string]any{
				"selectedDate": nil,
			},
			DerivedProperties: map[string]string{
				"isValid": "{{this.isRequired ? !!this.selectedDate : true}}",
			},
		},
		{
			Type: TypeRadioGroup,
			MetaProperties: map[string]any{
				"selectedOptionValue": nil,
			},
			DerivedProperties: map[string]string{
				"selectedOption": "{{this.options.find(o => o.value === this.selectedOptionValue)}}",
				"isValid":        "{{this.isRequired ? !!this.selectedOptionValue : true}}",
			},
		},
	}
}
