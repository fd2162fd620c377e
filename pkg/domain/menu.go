package domain

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	RootMenuTitle = "Screenshot settings"
	backLabel     = "Back to menu"
	exitLabel     = "Exit"
	selectedMark  = "✅ "
)

type MenuOption struct {
	Key    string
	Label  string
	Change SettingChange
}

type CategoryMenu struct {
	Category      string
	Label         string
	Title         string
	ButtonsPerRow int
	Options       []MenuOption
}

// Resolve maps an option key of the category to the change it applies.
func (m CategoryMenu) Resolve(key string) (SettingChange, bool) {
	opt, ok := lo.Find(m.Options, func(o MenuOption) bool {
		return strings.EqualFold(o.Key, key)
	})
	if ok {
		return opt.Change, true
	}

	if m.Category == FieldResolution {
		if r, ok := ParseResolution(key); ok {
			return ResolutionChange{Value: r}, true
		}
	}

	return nil, false
}

// Keyboard renders the category submenu, marking the option that matches settings.
func (m CategoryMenu) Keyboard(settings UserSettings) Keyboard {
	buttons := lo.Map(m.Options, func(o MenuOption, _ int) Button {
		label := o.Label
		if isSelected(o.Change, settings) {
			label = selectedMark + label
		}
		return Button{Label: label, Data: m.Category + "_" + o.Key}
	})

	rows := lo.Chunk(buttons, m.ButtonsPerRow)
	rows = append(rows, []Button{{Label: backLabel, Data: MenuCallback}})

	return Keyboard{Title: m.Title, Rows: rows}
}

func isSelected(change SettingChange, settings UserSettings) bool {
	applied := settings
	change.Apply(&applied)
	return applied == settings
}

var categoryMenus = []CategoryMenu{
	{
		Category:      FieldFullPage,
		Label:         "Full Page",
		Title:         "Capture Full Page ?",
		ButtonsPerRow: 2,
		Options: []MenuOption{
			{Key: "yes", Label: "Yes", Change: FullPageChange{Value: true}},
			{Key: "no", Label: "No", Change: FullPageChange{Value: false}},
		},
	},
	{
		Category:      FieldResolution,
		Label:         "Resolution",
		Title:         "Set Resolution",
		ButtonsPerRow: 2,
		Options: lo.Map(SupportedResolutions, func(r Resolution, _ int) MenuOption {
			return MenuOption{Key: strconv.Itoa(r.Width), Label: r.String(), Change: ResolutionChange{Value: r}}
		}),
	},
	{
		Category:      FieldDevice,
		Label:         "Device",
		Title:         "Emulate Device",
		ButtonsPerRow: 2,
		Options: []MenuOption{
			{Key: string(DeviceWindows), Label: "Windows", Change: DeviceChange{Value: DeviceWindows}},
			{Key: string(DeviceMac), Label: "Mac", Change: DeviceChange{Value: DeviceMac}},
			{Key: string(DeviceAndroid), Label: "Android", Change: DeviceChange{Value: DeviceAndroid}},
			{Key: string(DeviceIOS), Label: "iOS", Change: DeviceChange{Value: DeviceIOS}},
		},
	},
	{
		Category:      FieldFormat,
		Label:         "Format",
		Title:         "Output Format",
		ButtonsPerRow: 2,
		Options: []MenuOption{
			{Key: string(FormatImage), Label: "Image (PNG)", Change: FormatChange{Value: FormatImage}},
			{Key: string(FormatPDF), Label: "PDF", Change: FormatChange{Value: FormatPDF}},
		},
	},
}

// LookupMenu finds a settings category case-insensitively, so "fullpage" and "fullPage" both match.
func LookupMenu(category string) (CategoryMenu, bool) {
	return lo.Find(categoryMenus, func(m CategoryMenu) bool {
		return strings.EqualFold(m.Category, category)
	})
}

func RootKeyboard() Keyboard {
	rows := lo.Map(categoryMenus, func(m CategoryMenu, _ int) []Button {
		return []Button{{Label: m.Label, Data: m.Category}}
	})
	rows = append(rows, []Button{{Label: exitLabel, Data: ExitCallback}})

	return Keyboard{Title: RootMenuTitle, Rows: rows}
}
