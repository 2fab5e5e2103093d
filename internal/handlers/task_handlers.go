package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
	"todoApi/internal/auth"
	"todoApi/internal/handlers/dto"
	"todoApi/internal/logger"
	"todoApi/internal/middleware"
	"todoApi/internal/models/task"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService Service
}

func NewTaskHandler(taskService Service) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

// authorize достаёт личность из контекста и сверяет её с {userID} из пути.
// Возвращает пустую строку, если доступ запрещён и ответ уже записан.
func (s *TaskHandler) authorize(w http.ResponseWriter, r *http.Request) string {
	userID := chi.URLParam(r, "userID")
	identity := middleware.GetIdentity(r.Context())

	if err := auth.EnforceUserAccess(identity, userID); err != nil {
		logger.Warn("HTTP: Доступ к чужому ресурсу запрещён",
			zap.String("path_user_id", userID),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusForbidden, "нет доступа к этому ресурсу")
		return ""
	}

	return userID
}

func taskIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		responseWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}

	responseWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID := s.authorize(w, r)
	if userID == "" {
		return
	}

	filter := task.StatusFilter(r.URL.Query().Get("status"))
	if filter == "" {
		filter = task.FilterAll
	}
	if !filter.Valid() {
		logger.Warn("HTTP: Неверное значение параметра",
			zap.String("query", "status"),
			zap.String("value", string(filter)),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnprocessableEntity, "status должен быть all, pending или completed")
		return
	}

	sort := task.SortOrder(r.URL.Query().Get("sort"))
	if sort == "" {
		sort = task.SortCreated
	}
	if !sort.Valid() {
		logger.Warn("HTTP: Неверное значение параметра",
			zap.String("query", "sort"),
			zap.String("value", string(sort)),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnprocessableEntity, "sort должен быть created или title")
		return
	}

	tasks, err := s.TaskService.ListTasks(r.Context(), userID, filter, sort)
	if err != nil {
		handleServiceError(w, err, "list_tasks")
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID := s.authorize(w, r)
	if userID == "" {
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnprocessableEntity, "неверное тело запроса")
		return
	}

	if !validTitle(request.Title) {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnprocessableEntity, "title должен быть от 1 до 200 символов")
		return
	}

	if !validDescription(request.Description) {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "description"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnprocessableEntity, "description не может быть длиннее 1000 символов")
		return
	}

	created, err := s.TaskService.CreateTask(r.Context(), userID, request.Title, request.Description)
	if err != nil {
		handleServiceError(w, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.Int64("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, dto.FromTask(created))
}

func (s *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID := s.authorize(w, r)
	if userID == "" {
		return
	}

	id, err := taskIDParam(r)
	if err != nil {
		responseWithError(w, http.StatusNotFound, "задача не найдена")
		return
	}

	t, err := s.TaskService.GetTaskByID(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, err, "get_task")
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.Int64("task_id", t.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(t))
}

func (s *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID := s.authorize(w, r)
	if userID == "" {
		return
	}

	id, err := taskIDParam(r)
	if err != nil {
		responseWithError(w, http.StatusNotFound, "задача не найдена")
		return
	}

	var request dto.UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnprocessableEntity, "неверное тело запроса")
		return
	}

	if !request.HasFields() {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("error", "no_fields"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnprocessableEntity, "нужно передать хотя бы одно поле")
		return
	}

	opts := []task.Option{}

	if request.TitleSet {
		// явный null или пустой title запрещён: у задачи всегда есть название
		if request.Title == nil || !validTitle(*request.Title) {
			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", "title"),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusUnprocessableEntity, "title должен быть от 1 до 200 символов")
			return
		}
		opts = append(opts, task.WithTitle(*request.Title))
	}

	if request.DescriptionSet {
		// явный null описания — легальная очистка
		if !validDescription(request.Description) {
			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", "description"),
				zap.String("client_ip", r.RemoteAddr))

			responseWithError(w, http.StatusUnprocessableEntity, "description не может быть длиннее 1000 символов")
			return
		}
		opts = append(opts, task.WithDescription(request.Description))
	}

	updated, err := s.TaskService.UpdateTask(r.Context(), userID, id, opts...)
	if err != nil {
		handleServiceError(w, err, "update_task")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.Int64("task_id", updated.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(updated))
}

func (s *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID := s.authorize(w, r)
	if userID == "" {
		return
	}

	id, err := taskIDParam(r)
	if err != nil {
		responseWithError(w, http.StatusNotFound, "задача не найдена")
		return
	}

	if err := s.TaskService.DeleteTask(r.Context(), userID, id); err != nil {
		handleServiceError(w, err, "delete_task")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *TaskHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID := s.authorize(w, r)
	if userID == "" {
		return
	}

	id, err := taskIDParam(r)
	if err != nil {
		responseWithError(w, http.StatusNotFound, "задача не найдена")
		return
	}

	t, err := s.TaskService.ToggleComplete(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, err, "toggle_complete")
		return
	}

	logger.Info("HTTP_OUT: Статус задачи переключён",
		zap.Int64("task_id", t.ID),
		zap.Bool("completed", t.Completed),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(t))
}
