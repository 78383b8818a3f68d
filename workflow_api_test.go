package main

import (
	"net/http"
	"testing"

	"github.com/moaz779/Task-Workflow-Manager/models"
	"github.com/moaz779/Task-Workflow-Manager/utils"
)

func createWorkflow(t *testing.T, env *testEnv, auth map[string]string, body map[string]any) models.Workflow {
	t.Helper()
	w := doRequest(t, env.router, http.MethodPost, "/workflows", body, auth)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /workflows status=%d body=%s", w.Code, w.Body.String())
	}
	var wf models.Workflow
	decode(t, w, &wf)
	return wf
}

func TestWorkflows_CRUD(t *testing.T) {
	env := setupTestEnv(t)
	auth := bearerFor(t, env.alice)

	wf := createWorkflow(t, env, auth, map[string]any{
		"name":        "Release checklist",
		"description": "Steps before shipping",
		"cost":        250.0,
		"taxRate":     0.2,
		"isPublic":    false,
	})
	if wf.ID == "" || wf.UserID != env.alice.ID || wf.IsPublic {
		t.Fatalf("unexpected workflow: %+v", wf)
	}

	w := doRequest(t, env.router, http.MethodPut, "/workflows/"+wf.ID,
		map[string]any{"cost": 300.0, "isPublic": true}, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT /workflows/:id status=%d body=%s", w.Code, w.Body.String())
	}
	var updated models.Workflow
	decode(t, w, &updated)
	if updated.Cost != 300.0 || !updated.IsPublic {
		t.Fatalf("update not applied: %+v", updated)
	}

	w = doRequest(t, env.router, http.MethodDelete, "/workflows/"+wf.ID, nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE /workflows/:id status=%d body=%s", w.Code, w.Body.String())
	}
	w = doRequest(t, env.router, http.MethodGet, "/workflows/"+wf.ID, nil, auth)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET deleted workflow status=%d", w.Code)
	}
}

func TestWorkflows_RangeValidation(t *testing.T) {
	env := setupTestEnv(t)
	auth := bearerFor(t, env.alice)

	w := doRequest(t, env.router, http.MethodPost, "/workflows",
		map[string]any{"name": "neg", "cost": -1.0}, auth)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative cost status=%d", w.Code)
	}

	w = doRequest(t, env.router, http.MethodPost, "/workflows",
		map[string]any{"name": "tax", "taxRate": 1.5}, auth)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range taxRate status=%d", w.Code)
	}

	w = doRequest(t, env.router, http.MethodPost, "/workflows", map[string]any{}, auth)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing name status=%d", w.Code)
	}
}

func TestWorkflows_Visibility(t *testing.T) {
	env := setupTestEnv(t)
	aliceAuth := bearerFor(t, env.alice)
	bobAuth := bearerFor(t, env.bob)

	private := createWorkflow(t, env, aliceAuth, map[string]any{"name": "Private", "isPublic": false})
	public := createWorkflow(t, env, aliceAuth, map[string]any{"name": "Public", "isPublic": true})

	// Bob's listing contains only the public workflow.
	w := doRequest(t, env.router, http.MethodGet, "/workflows", nil, bobAuth)
	var listed []models.Workflow
	decode(t, w, &listed)
	if len(listed) != 1 || listed[0].ID != public.ID {
		t.Fatalf("bob's listing=%+v", listed)
	}

	w = doRequest(t, env.router, http.MethodGet, "/workflows/"+private.ID, nil, bobAuth)
	if w.Code != http.StatusNotFound {
		t.Fatalf("private workflow visible to non-owner: status=%d", w.Code)
	}

	// Public is readable by anyone authenticated, with ownership flagged.
	w = doRequest(t, env.router, http.MethodGet, "/workflows/"+public.ID, nil, bobAuth)
	if w.Code != http.StatusOK {
		t.Fatalf("public workflow not visible: status=%d body=%s", w.Code, w.Body.String())
	}
	var detail struct {
		models.Workflow
		IsOwner bool `json:"isOwner"`
	}
	decode(t, w, &detail)
	if detail.IsOwner {
		t.Fatal("bob flagged as owner of alice's workflow")
	}
	w = doRequest(t, env.router, http.MethodGet, "/workflows/"+public.ID, nil, aliceAuth)
	decode(t, w, &detail)
	if !detail.IsOwner {
		t.Fatal("alice not flagged as owner")
	}

	// Public visibility never grants write access; failures read as NotFound.
	w = doRequest(t, env.router, http.MethodPut, "/workflows/"+public.ID,
		map[string]any{"name": "hijack"}, bobAuth)
	if w.Code != http.StatusNotFound {
		t.Fatalf("PUT public workflow by non-owner status=%d want 404", w.Code)
	}
	w = doRequest(t, env.router, http.MethodDelete, "/workflows/"+public.ID, nil, bobAuth)
	if w.Code != http.StatusNotFound {
		t.Fatalf("DELETE public workflow by non-owner status=%d want 404", w.Code)
	}
}

func TestWorkflows_Calc(t *testing.T) {
	env := setupTestEnv(t)
	aliceAuth := bearerFor(t, env.alice)
	bobAuth := bearerFor(t, env.bob)

	wf := createWorkflow(t, env, aliceAuth, map[string]any{
		"name":     "Priced",
		"cost":     100.0,
		"taxRate":  0.0825,
		"isPublic": true,
	})

	w := doRequest(t, env.router, http.MethodGet, "/workflows/"+wf.ID+"/calc", nil, bobAuth)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /workflows/:id/calc status=%d body=%s", w.Code, w.Body.String())
	}
	var calc models.WorkflowCalc
	decode(t, w, &calc)
	if calc.Subtotal != 100 || calc.TaxRate != 0.0825 {
		t.Fatalf("unexpected calc inputs: %+v", calc)
	}
	if calc.TaxAmount != 8.25 {
		t.Fatalf("taxAmount=%v want 8.25", calc.TaxAmount)
	}
	if calc.Total != 108.25 {
		t.Fatalf("total=%v want 108.25", calc.Total)
	}

	// The calc route follows the visible predicate: a private workflow is
	// NotFound for non-owners but still computable by its owner.
	private := createWorkflow(t, env, aliceAuth, map[string]any{
		"name":     "Priced privately",
		"cost":     50.0,
		"taxRate":  0.1,
		"isPublic": false,
	})
	w = doRequest(t, env.router, http.MethodGet, "/workflows/"+private.ID+"/calc", nil, bobAuth)
	if w.Code != http.StatusNotFound {
		t.Fatalf("calc on private workflow by non-owner status=%d want 404", w.Code)
	}
	w = doRequest(t, env.router, http.MethodGet, "/workflows/"+private.ID+"/calc", nil, aliceAuth)
	if w.Code != http.StatusOK {
		t.Fatalf("calc on private workflow by owner status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestWorkflowTasks_AddRemoveAndOrder(t *testing.T) {
	env := setupTestEnv(t)
	auth := bearerFor(t, env.alice)

	first := createTask(t, env, auth, map[string]any{"title": "first"})
	second := createTask(t, env, auth, map[string]any{"title": "second"})
	third := createTask(t, env, auth, map[string]any{"title": "third"})

	wf := createWorkflow(t, env, auth, map[string]any{"name": "Ordered"})

	for _, task := range []models.Task{first, second, third} {
		w := doRequest(t, env.router, http.MethodPost, "/workflows/"+wf.ID+"/tasks",
			map[string]any{"taskId": task.ID}, auth)
		if w.Code != http.StatusOK {
			t.Fatalf("add task %q status=%d body=%s", task.Title, w.Code, w.Body.String())
		}
	}

	w := doRequest(t, env.router, http.MethodGet, "/workflows/"+wf.ID, nil, auth)
	var detail models.Workflow
	decode(t, w, &detail)
	if len(detail.Tasks) != 3 {
		t.Fatalf("task count=%d want 3", len(detail.Tasks))
	}
	for i, want := range []string{"first", "second", "third"} {
		if detail.Tasks[i].Title != want {
			t.Fatalf("position %d is %q want %q", i, detail.Tasks[i].Title, want)
		}
	}

	// Removal keeps the remaining order; positions are not compacted.
	w = doRequest(t, env.router, http.MethodDelete, "/workflows/"+wf.ID+"/tasks/"+second.ID, nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("remove task status=%d body=%s", w.Code, w.Body.String())
	}
	w = doRequest(t, env.router, http.MethodGet, "/workflows/"+wf.ID, nil, auth)
	decode(t, w, &detail)
	if len(detail.Tasks) != 2 || detail.Tasks[0].Title != "first" || detail.Tasks[1].Title != "third" {
		t.Fatalf("order after removal: %+v", detail.Tasks)
	}

	// A task added after a removal still appends to the end.
	w = doRequest(t, env.router, http.MethodPost, "/workflows/"+wf.ID+"/tasks",
		map[string]any{"taskId": second.ID}, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("re-add task status=%d body=%s", w.Code, w.Body.String())
	}
	w = doRequest(t, env.router, http.MethodGet, "/workflows/"+wf.ID, nil, auth)
	decode(t, w, &detail)
	if detail.Tasks[len(detail.Tasks)-1].Title != "second" {
		t.Fatalf("re-added task not at end: %+v", detail.Tasks)
	}
}

func TestWorkflows_CreateWithInitialTasks(t *testing.T) {
	env := setupTestEnv(t)
	auth := bearerFor(t, env.alice)

	a := createTask(t, env, auth, map[string]any{"title": "a"})
	b := createTask(t, env, auth, map[string]any{"title": "b"})

	wf := createWorkflow(t, env, auth, map[string]any{
		"name":  "Seeded",
		"tasks": []string{b.ID, a.ID},
	})
	if len(wf.Tasks) != 2 || wf.Tasks[0].ID != b.ID || wf.Tasks[1].ID != a.ID {
		t.Fatalf("initial tasks out of order: %+v", wf.Tasks)
	}

	// An unknown id in the initial list is a validation failure, and the
	// workflow is not created.
	w := doRequest(t, env.router, http.MethodPost, "/workflows", map[string]any{
		"name":  "Broken",
		"tasks": []string{"00000000-0000-0000-0000-000000000000"},
	}, auth)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown initial task status=%d want 400 body=%s", w.Code, w.Body.String())
	}
	if code := errCode(t, w); code != utils.CodeValidation {
		t.Fatalf("code=%q want %q", code, utils.CodeValidation)
	}

	w = doRequest(t, env.router, http.MethodGet, "/workflows", nil, auth)
	var listed []models.Workflow
	decode(t, w, &listed)
	for _, item := range listed {
		if item.Name == "Broken" {
			t.Fatal("workflow created despite invalid initial task")
		}
	}
}

func TestWorkflowTasks_DuplicateRejected(t *testing.T) {
	env := setupTestEnv(t)
	auth := bearerFor(t, env.alice)

	task := createTask(t, env, auth, map[string]any{"title": "once"})
	wf := createWorkflow(t, env, auth, map[string]any{"name": "NoDupes"})

	w := doRequest(t, env.router, http.MethodPost, "/workflows/"+wf.ID+"/tasks",
		map[string]any{"taskId": task.ID}, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("first add status=%d body=%s", w.Code, w.Body.String())
	}

	// The composite key rejects the second insert.
	w = doRequest(t, env.router, http.MethodPost, "/workflows/"+wf.ID+"/tasks",
		map[string]any{"taskId": task.ID}, auth)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate add status=%d want 409 body=%s", w.Code, w.Body.String())
	}
	if code := errCode(t, w); code != utils.CodeConflict {
		t.Fatalf("code=%q want %q", code, utils.CodeConflict)
	}
}

// A workflow owner may attach any existing task, including one owned by a
// different user. This preserves the looser legacy behavior on purpose.
func TestWorkflowTasks_CrossOwnerTaskAllowed(t *testing.T) {
	env := setupTestEnv(t)
	aliceAuth := bearerFor(t, env.alice)
	bobAuth := bearerFor(t, env.bob)

	bobsTask := createTask(t, env, bobAuth, map[string]any{"title": "bob's"})
	wf := createWorkflow(t, env, aliceAuth, map[string]any{"name": "Mixed"})

	w := doRequest(t, env.router, http.MethodPost, "/workflows/"+wf.ID+"/tasks",
		map[string]any{"taskId": bobsTask.ID}, aliceAuth)
	if w.Code != http.StatusOK {
		t.Fatalf("cross-owner add status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestWorkflowTasks_OwnershipRequired(t *testing.T) {
	env := setupTestEnv(t)
	aliceAuth := bearerFor(t, env.alice)
	bobAuth := bearerFor(t, env.bob)

	task := createTask(t, env, bobAuth, map[string]any{"title": "t"})
	public := createWorkflow(t, env, aliceAuth, map[string]any{"name": "Public", "isPublic": true})

	// Even on a public workflow, only the owner manages the task list.
	w := doRequest(t, env.router, http.MethodPost, "/workflows/"+public.ID+"/tasks",
		map[string]any{"taskId": task.ID}, bobAuth)
	if w.Code != http.StatusNotFound {
		t.Fatalf("non-owner add status=%d want 404", w.Code)
	}
	w = doRequest(t, env.router, http.MethodDelete, "/workflows/"+public.ID+"/tasks/"+task.ID, nil, bobAuth)
	if w.Code != http.StatusNotFound {
		t.Fatalf("non-owner remove status=%d want 404", w.Code)
	}

	// Unknown task id on an owned workflow.
	w = doRequest(t, env.router, http.MethodPost, "/workflows/"+public.ID+"/tasks",
		map[string]any{"taskId": "00000000-0000-0000-0000-000000000000"}, aliceAuth)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown task add status=%d want 404", w.Code)
	}
}

func TestWorkflows_DeleteCascadesAssociations(t *testing.T) {
	env := setupTestEnv(t)
	auth := bearerFor(t, env.alice)

	task := createTask(t, env, auth, map[string]any{"title": "survivor"})
	wf := createWorkflow(t, env, auth, map[string]any{"name": "Doomed", "tasks": []string{task.ID}})

	w := doRequest(t, env.router, http.MethodPost, "/workflows/"+wf.ID+"/comments",
		map[string]any{"text": "nice", "rating": 5}, auth)
	if w.Code != http.StatusCreated {
		t.Fatalf("comment status=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, env.router, http.MethodDelete, "/workflows/"+wf.ID, nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("delete workflow status=%d body=%s", w.Code, w.Body.String())
	}

	// The task itself survives; only the association is gone.
	w = doRequest(t, env.router, http.MethodGet, "/tasks/"+task.ID, nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("task gone after workflow delete: status=%d", w.Code)
	}
}
