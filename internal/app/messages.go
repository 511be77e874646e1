package app

const (
	LocaleRU = "ru"
	LocaleEN = "en"
)

// messages is keyed by locale, then "field.rule".
var messages = map[string]map[string]string{
	LocaleRU: {
		"tourTitle.required":        "Название тура обязательно",
		"client_name.min":           "Имя должно содержать минимум 2 символа",
		"client_name.max":           "Имя слишком длинное",
		"client_contact.intl_phone": "Введите номер в международном формате, например +79990000000",
		"desired_date.future_date":  "Дата должна быть в будущем",
		"pax.min":                   "Минимум 1 человек",
		"pax.max":                   "Максимум 20 человек",
		"client_message.max":        "Сообщение слишком длинное",
		"consent.is_true":           "Необходимо согласие",
		"default":                   "Некорректное значение",
	},
	LocaleEN: {
		"tourTitle.required":        "Tour title is required",
		"client_name.min":           "Name must be at least 2 characters",
		"client_name.max":           "Name is too long",
		"client_contact.intl_phone": "Enter the number in international format, e.g. +79990000000",
		"desired_date.future_date":  "Date must be in the future",
		"pax.min":                   "At least 1 person",
		"pax.max":                   "At most 20 people",
		"client_message.max":        "Message is too long",
		"consent.is_true":           "Consent is required",
		"default":                   "Invalid value",
	},
}

// SupportedLocale maps anything unknown to Russian, the site's language.
func SupportedLocale(l string) string {
	if _, ok := messages[l]; ok {
		return l
	}
	return LocaleRU
}

func Message(locale, field, rule string) string {
	m := messages[SupportedLocale(locale)]
	if s, ok := m[field+"."+rule]; ok {
		return s
	}
	return m["default"]
}
