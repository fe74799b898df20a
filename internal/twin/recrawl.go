package twin

import (
	"encoding/json"
	"net/http"

	"github.com/fivetwenty-io/webmaster-client/internal/constants"
	"github.com/fivetwenty-io/webmaster-client/pkg/webmaster"
)

// queueRecrawl handles POST .../recrawl/queue.
func (t *Twin) queueRecrawl(w http.ResponseWriter, r *http.Request) {
	var req webmaster.RecrawlRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil || req.URL == "" {
		writeError(w, webmaster.ErrorCodeEntityValidationError, "url is required")

		return
	}

	t.writeHost(w, r, true, func(record *hostRecord) {
		if !belongsTo(record.info.HostID, req.URL) {
			writeError(w, webmaster.ErrorCodeInvalidURL, "URL "+req.URL+" does not belong to host")

			return
		}

		if record.recrawlQuota.QuotaRemainder <= 0 {
			writeError(w, webmaster.ErrorCodeQuotaExceeded, "Daily recrawl quota exceeded")

			return
		}

		task := webmaster.RecrawlTask{
			TaskID:    newID(),
			URL:       req.URL,
			AddedTime: webmaster.NewTime(t.clock()),
			State:     webmaster.RecrawlTaskStateInProgress,
		}
		record.recrawlTasks = append(record.recrawlTasks, task)
		record.recrawlQuota.QuotaRemainder--

		remainder := record.recrawlQuota.QuotaRemainder

		writeJSON(w, http.StatusAccepted, webmaster.RecrawlResponse{
			TaskID:         task.TaskID,
			QuotaRemainder: &remainder,
		})
	})
}

// listRecrawlTasks handles GET .../recrawl/queue, newest first.
func (t *Twin) listRecrawlTasks(w http.ResponseWriter, r *http.Request) {
	from, to, verr := dateRange(r)
	if verr != nil {
		verr.write(w)

		return
	}

	t.readHost(w, r, true, func(record *hostRecord) {
		tasks := make([]webmaster.RecrawlTask, 0, len(record.recrawlTasks))

		for i := len(record.recrawlTasks) - 1; i >= 0; i-- {
			task := record.recrawlTasks[i]
			if inRange(task.AddedTime.Time, from, to) {
				tasks = append(tasks, task)
			}
		}

		page, verr := paginate(r, tasks, constants.MaxPageSize)
		if verr != nil {
			verr.write(w)

			return
		}

		writeJSON(w, http.StatusOK, webmaster.RecrawlTasksResponse{Tasks: page})
	})
}

// getRecrawlTask handles GET .../recrawl/queue/{taskID}.
func (t *Twin) getRecrawlTask(w http.ResponseWriter, r *http.Request) {
	taskID := urlParam(r, "taskID")

	t.readHost(w, r, true, func(record *hostRecord) {
		for _, task := range record.recrawlTasks {
			if task.TaskID == taskID {
				writeJSON(w, http.StatusOK, task)

				return
			}
		}

		writeError(w, webmaster.ErrorCodeTaskNotFound, "Task "+taskID+" not found")
	})
}

// getRecrawlQuota handles GET .../recrawl/quota.
func (t *Twin) getRecrawlQuota(w http.ResponseWriter, r *http.Request) {
	t.readHost(w, r, true, func(record *hostRecord) {
		writeJSON(w, http.StatusOK, record.recrawlQuota)
	})
}

// FinishRecrawl sets the final state of a recrawl task.
func (t *Twin) FinishRecrawl(hostID, taskID string, state webmaster.RecrawlTaskState) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	record, ok := t.store.host(hostID)
	if !ok {
		return
	}

	for i := range record.recrawlTasks {
		if record.recrawlTasks[i].TaskID == taskID {
			record.recrawlTasks[i].State = state
		}
	}
}
