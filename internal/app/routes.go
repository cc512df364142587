package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Allocation
	r.HandleFunc("/api/allocation/breakdown", deps.AllocationHandler.ComputeBreakdown).Methods("POST")

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.ListProjects).Methods("GET")
	r.HandleFunc("/api/project", deps.ProjectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/api/project/{projectId:[0-9]+}", deps.ProjectHandler.GetProject).Methods("GET")
	r.HandleFunc("/api/project/{projectId:[0-9]+}", deps.ProjectHandler.UpdateProject).Methods("PUT")
	r.HandleFunc("/api/project/{projectId:[0-9]+}", deps.ProjectHandler.DeleteProject).Methods("DELETE")
	r.HandleFunc("/api/project/{projectId:[0-9]+}/breakdown", deps.ProjectHandler.GetBreakdown).Methods("GET")

	// Payroll
	r.HandleFunc("/api/freelancer", deps.PayrollHandler.ListFreelancers).Methods("GET")
	r.HandleFunc("/api/freelancer", deps.PayrollHandler.AddFreelancer).Methods("POST")
	r.HandleFunc("/api/freelancer/export", deps.PayrollHandler.ExportFreelancers).Methods("GET")
	r.HandleFunc("/api/freelancer/{freelancerId:[0-9]+}", deps.PayrollHandler.GetFreelancer).Methods("GET")
	r.HandleFunc("/api/freelancer/{freelancerId:[0-9]+}", deps.PayrollHandler.UpdateFreelancer).Methods("PUT")
	r.HandleFunc("/api/freelancer/{freelancerId:[0-9]+}", deps.PayrollHandler.DeleteFreelancer).Methods("DELETE")

	// Ledger
	r.HandleFunc("/api/transaction", deps.LedgerHandler.ListTransactions).Methods("GET")
	r.HandleFunc("/api/transaction", deps.LedgerHandler.CreateTransaction).Methods("POST")
	r.HandleFunc("/api/transaction/export", deps.LedgerHandler.ExportTransactions).Methods("GET")
	r.HandleFunc("/api/transaction/{transactionId:[0-9]+}", deps.LedgerHandler.GetTransaction).Methods("GET")
	r.HandleFunc("/api/transaction/{transactionId:[0-9]+}", deps.LedgerHandler.UpdateTransaction).Methods("PUT")
	r.HandleFunc("/api/transaction/{transactionId:[0-9]+}", deps.LedgerHandler.DeleteTransaction).Methods("DELETE")
}
