package locale

import "golang.org/x/text/language"

// translations lists every shipped language. The first entry is the fallback.
var translations = []struct {
	tag     language.Tag
	strings Strings
}{
	{language.English, Strings{
		NoDeviceTrayText:        "EarTrumpet: No playback devices",
		ContextMenuNoDevices:    "No playback devices",
		FullWindowTitleText:     "Volume mixer",
		LegacyVolumeMixerText:   "Legacy volume mixer",
		PlaybackDevicesText:     "Playback devices",
		RecordingDevicesText:    "Recording devices",
		SoundsControlPanelText:  "Sounds control panel",
		SettingsWindowText:      "Settings",
		ContextMenuSendFeedback: "Send feedback",
		ContextMenuExitTitle:    "Exit",
	}},
	{language.German, Strings{
		NoDeviceTrayText:        "EarTrumpet: Keine Wiedergabegeräte",
		ContextMenuNoDevices:    "Keine Wiedergabegeräte",
		FullWindowTitleText:     "Lautstärkemixer",
		LegacyVolumeMixerText:   "Klassischer Lautstärkemixer",
		PlaybackDevicesText:     "Wiedergabegeräte",
		RecordingDevicesText:    "Aufnahmegeräte",
		SoundsControlPanelText:  "Sound-Systemsteuerung",
		SettingsWindowText:      "Einstellungen",
		ContextMenuSendFeedback: "Feedback senden",
		ContextMenuExitTitle:    "Beenden",
	}},
	{language.French, Strings{
		NoDeviceTrayText:        "EarTrumpet : aucun périphérique de lecture",
		ContextMenuNoDevices:    "Aucun périphérique de lecture",
		FullWindowTitleText:     "Mélangeur de volume",
		LegacyVolumeMixerText:   "Ancien mélangeur de volume",
		PlaybackDevicesText:     "Périphériques de lecture",
		RecordingDevicesText:    "Périphériques d'enregistrement",
		SoundsControlPanelText:  "Panneau de configuration Son",
		SettingsWindowText:      "Paramètres",
		ContextMenuSendFeedback: "Envoyer des commentaires",
		ContextMenuExitTitle:    "Quitter",
	}},
	{language.Arabic, Strings{
		NoDeviceTrayText:        "EarTrumpet: لا توجد أجهزة تشغيل",
		ContextMenuNoDevices:    "لا توجد أجهزة تشغيل",
		FullWindowTitleText:     "خالط مستوى الصوت",
		LegacyVolumeMixerText:   "خالط مستوى الصوت القديم",
		PlaybackDevicesText:     "أجهزة التشغيل",
		RecordingDevicesText:    "أجهزة التسجيل",
		SoundsControlPanelText:  "لوحة تحكم الأصوات",
		SettingsWindowText:      "الإعدادات",
		ContextMenuSendFeedback: "إرسال الملاحظات",
		ContextMenuExitTitle:    "خروج",
	}},
	{language.Hebrew, Strings{
		NoDeviceTrayText:        "EarTrumpet: אין התקני השמעה",
		ContextMenuNoDevices:    "אין התקני השמעה",
		FullWindowTitleText:     "מערבל עוצמת קול",
		LegacyVolumeMixerText:   "מערבל עוצמת קול קלאסי",
		PlaybackDevicesText:     "התקני השמעה",
		RecordingDevicesText:    "התקני הקלטה",
		SoundsControlPanelText:  "לוח הבקרה של צלילים",
		SettingsWindowText:      "הגדרות",
		ContextMenuSendFeedback: "שלח משוב",
		ContextMenuExitTitle:    "יציאה",
	}},
}
