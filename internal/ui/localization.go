package ui

import "fmt"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeySelectFiles      = "select_files"
	KeySelectFolder     = "select_folder"
	KeyUpload           = "upload"
	KeyRetry            = "retry"
	KeySkip             = "skip"
	KeyDelete           = "delete"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyLanguage         = "language"
	KeyTargetURL        = "target_url"
	KeyAdvanceOnFailure = "advance_on_failure"
	KeyStrictStatus     = "strict_status"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeySettingsSaved    = "settings_saved"
	KeyFilesAdded       = "files_added"
	KeyNoNewFiles       = "no_new_files"
	KeyNothingToUpload  = "nothing_to_upload"
	KeyUploadStarted    = "upload_started"
	KeyUploaded         = "uploaded"
	KeyUploadFailed     = "upload_failed"
	KeyQueueHalted      = "queue_halted"
	KeyAllUploaded      = "all_uploaded"
	KeyDeleted          = "deleted"
	KeyInvalidURL       = "invalid_url"
	KeyDropHint         = "drop_hint"

	KeyStatusPending    = "status_pending"
	KeyStatusInProgress = "status_in_progress"
	KeyStatusSucceeded  = "status_succeeded"
	KeyStatusFailed     = "status_failed"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key with args substituted
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "HFS Uploader",
		KeySelectFiles:      "Add File",
		KeySelectFolder:     "Add Folder",
		KeyUpload:           "Upload",
		KeyRetry:            "Retry",
		KeySkip:             "Skip",
		KeyDelete:           "Delete",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeyTargetURL:        "Server URL",
		KeyAdvanceOnFailure: "Continue after a failed upload",
		KeyStrictStatus:     "Treat HTTP errors as failures",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyFilesAdded:       "%d file(s) added",
		KeyNoNewFiles:       "No new files: every name is already in the list",
		KeyNothingToUpload:  "Add files before uploading",
		KeyUploadStarted:    "Upload started",
		KeyUploaded:         "%s uploaded",
		KeyUploadFailed:     "%s failed: %v",
		KeyQueueHalted:      "Upload stopped at %s. Retry or skip it to continue.",
		KeyAllUploaded:      "All uploads finished",
		KeyDeleted:          "%s deleted",
		KeyInvalidURL:       "Invalid URL",
		KeyDropHint:         "Drop files here or use Add File",
		KeyStatusPending:    "Pending",
		KeyStatusInProgress: "Uploading",
		KeyStatusSucceeded:  "Done",
		KeyStatusFailed:     "Failed",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "HFS Загрузчик",
		KeySelectFiles:      "Добавить файл",
		KeySelectFolder:     "Добавить папку",
		KeyUpload:           "Загрузить",
		KeyRetry:            "Повторить",
		KeySkip:             "Пропустить",
		KeyDelete:           "Удалить",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyLanguage:         "Язык",
		KeyTargetURL:        "Адрес сервера",
		KeyAdvanceOnFailure: "Продолжать после ошибки",
		KeyStrictStatus:     "Считать ошибки HTTP неудачей",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeySettingsSaved:    "Настройки успешно сохранены!",
		KeyFilesAdded:       "Добавлено файлов: %d",
		KeyNoNewFiles:       "Новых файлов нет: все имена уже в списке",
		KeyNothingToUpload:  "Сначала добавьте файлы",
		KeyUploadStarted:    "Загрузка начата",
		KeyUploaded:         "%s загружен",
		KeyUploadFailed:     "%s: ошибка: %v",
		KeyQueueHalted:      "Загрузка остановлена на %s. Повторите или пропустите файл.",
		KeyAllUploaded:      "Все файлы загружены",
		KeyDeleted:          "%s удалён",
		KeyInvalidURL:       "Неверный URL",
		KeyDropHint:         "Перетащите файлы сюда или нажмите «Добавить файл»",
		KeyStatusPending:    "Ожидание",
		KeyStatusInProgress: "Загрузка",
		KeyStatusSucceeded:  "Готово",
		KeyStatusFailed:     "Ошибка",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "HFS Uploader",
		KeySelectFiles:      "Adicionar Arquivo",
		KeySelectFolder:     "Adicionar Pasta",
		KeyUpload:           "Enviar",
		KeyRetry:            "Tentar Novamente",
		KeySkip:             "Pular",
		KeyDelete:           "Excluir",
		KeySettings:         "Configurações",
		KeyFile:             "Arquivo",
		KeyLanguage:         "Idioma",
		KeyTargetURL:        "URL do Servidor",
		KeyAdvanceOnFailure: "Continuar após falha no envio",
		KeyStrictStatus:     "Tratar erros HTTP como falhas",
		KeySave:             "Salvar",
		KeyCancel:           "Cancelar",
		KeySettingsSaved:    "Configurações salvas com sucesso!",
		KeyFilesAdded:       "%d arquivo(s) adicionado(s)",
		KeyNoNewFiles:       "Nenhum arquivo novo: todos os nomes já estão na lista",
		KeyNothingToUpload:  "Adicione arquivos antes de enviar",
		KeyUploadStarted:    "Envio iniciado",
		KeyUploaded:         "%s enviado",
		KeyUploadFailed:     "%s falhou: %v",
		KeyQueueHalted:      "Envio parado em %s. Tente novamente ou pule para continuar.",
		KeyAllUploaded:      "Todos os envios concluídos",
		KeyDeleted:          "%s excluído",
		KeyInvalidURL:       "URL inválida",
		KeyDropHint:         "Solte arquivos aqui ou use Adicionar Arquivo",
		KeyStatusPending:    "Pendente",
		KeyStatusInProgress: "Enviando",
		KeyStatusSucceeded:  "Concluído",
		KeyStatusFailed:     "Falhou",
	}
}
