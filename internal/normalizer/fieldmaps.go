// internal/normalizer/fieldmaps.go
package normalizer

// NYCFieldMaps maps NYC Open Data column names onto canonical fields, one
// entry per category consulted for a report.
func NYCFieldMaps() map[string]FieldMap {
	return map[string]FieldMap{
		"hpd_violations": {
			ID:          []string{"violationid"},
			Status:      []string{"violationstatus", "currentstatus"},
			Date:        []string{"inspectiondate", "novissueddate"},
			Description: []string{"novdescription"},
			BuildingID:  []string{"bin"},
			ParcelID:    []string{"bbl"},
			Block:       []string{"block"},
			Lot:         []string{"lot"},
		},
		"dob_violations": {
			ID:          []string{"isn_dob_bis_viol", "number"},
			Status:      []string{"violation_category"},
			Date:        []string{"issue_date"},
			Description: []string{"description", "violation_type"},
			BuildingID:  []string{"bin"},
			ParcelID:    []string{"bbl"},
			Block:       []string{"block"},
			Lot:         []string{"lot"},
		},
		"elevator_inspections": {
			ID:          []string{"device_number"},
			Status:      []string{"device_status"},
			Date:        []string{"status_date", "lastper_insp_date"},
			Description: []string{"device_type"},
			BuildingID:  []string{"bin"},
			Block:       []string{"block"},
			Lot:         []string{"lot"},
		},
		"boiler_inspections": {
			ID:          []string{"tracking_number", "boiler_id"},
			Status:      []string{"report_status"},
			Date:        []string{"inspection_date"},
			Description: []string{"inspection_type", "boiler_make"},
			BuildingID:  []string{"bin_number"},
		},
		"electrical_permits": {
			ID:          []string{"job_number", "filing_number"},
			Status:      []string{"filing_status", "job_status"},
			Date:        []string{"filing_date", "issued_date"},
			Description: []string{"job_description"},
			BuildingID:  []string{"bin"},
			Block:       []string{"block"},
		},
	}
}

// PhillyFieldMaps maps Philadelphia L&I column names onto canonical fields.
// The Carto tables are lowercase; the certifications feature service shouts
// in uppercase.
func PhillyFieldMaps() map[string]FieldMap {
	return map[string]FieldMap{
		"li_permits": {
			ID:          []string{"permitnumber"},
			Status:      []string{"status"},
			Date:        []string{"permitissuedate"},
			Description: []string{"permitdescription", "permittype"},
			BuildingID:  []string{"parcel_id_num"},
			ParcelID:    []string{"opa_account_num"},
		},
		"li_violations": {
			ID:          []string{"violationnumber", "casenumber"},
			Status:      []string{"violationstatus", "status"},
			Date:        []string{"violationdate"},
			Description: []string{"violationcodetitle", "violationdescription"},
			BuildingID:  []string{"parcel_id_num"},
			ParcelID:    []string{"opa_account_num"},
		},
		"li_investigations": {
			ID:          []string{"casenumber", "caseid"},
			Status:      []string{"investigationstatus", "outcome"},
			Date:        []string{"investigationcompleted"},
			Description: []string{"investigationtype"},
			BuildingID:  []string{"parcel_id_num"},
			ParcelID:    []string{"opa_account_num"},
		},
		"li_certifications": {
			ID:          []string{"CERT_ID", "OBJECTID"},
			Status:      []string{"STATUS", "CERT_STATUS"},
			Date:        []string{"EXPIRATION_DATE", "EXPIRATIONDATE"},
			Description: []string{"CERT_TYPE"},
			BuildingID:  []string{"STRUCTURE_ID"},
			ParcelID:    []string{"OPA_ACCOUNT_NUM"},
		},
	}
}
