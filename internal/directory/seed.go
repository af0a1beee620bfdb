package directory

import "github.com/foresight-sec/incident-room/internal/domain"

func rate(v int) *int { return &v }

// seedProfiles is the built-in specialist roster.
var seedProfiles = []domain.Specialist{
	{
		UserID:        "forensic-001",
		Name:          "Dr. Emily Rodriguez",
		Email:         "emily.rodriguez@forensics.mssp.com",
		Role:          domain.SpecialistForensicAnalyst,
		DisplayRole:   "Senior Digital Forensics Analyst",
		Organization:  domain.OrgMSSP,
		Expertise:     []string{"Disk forensics", "Memory analysis", "Timeline reconstruction", "Evidence preservation"},
		IncidentTypes: []string{"Data Exfiltration", "Unauthorized Access", "Insider Threat", "Evidence Collection"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 30 min",
	},
	{
		UserID:        "forensic-002",
		Name:          "Marcus Chen",
		Email:         "marcus.chen@forensics.mssp.com",
		Role:          domain.SpecialistNetworkForensics,
		DisplayRole:   "Network Forensics Specialist",
		Organization:  domain.OrgMSSP,
		Expertise:     []string{"Network traffic analysis", "PCAP analysis", "C2 detection", "Protocol analysis"},
		IncidentTypes: []string{"Network Intrusion", "C2 Communication", "DDoS Attack", "Lateral Movement"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 1 hour",
	},
	{
		UserID:        "forensic-003",
		Name:          "Sarah Okonkwo",
		Email:         "sarah.okonkwo@forensics.mssp.com",
		Role:          domain.SpecialistEndpointSpecialist,
		DisplayRole:   "Endpoint Forensics Specialist",
		Organization:  domain.OrgMSSP,
		Expertise:     []string{"EDR analysis", "Registry forensics", "Process analysis", "Artifact collection"},
		IncidentTypes: []string{"Malware Infection", "Ransomware", "Privilege Escalation", "Suspicious Process"},
		Availability:  domain.AvailabilityBusy,
		ResponseTime:  "2-4 hours",
	},
	{
		UserID:        "malware-001",
		Name:          "Dr. James Park",
		Email:         "james.park@malware.mssp.com",
		Role:          domain.SpecialistMalwareAnalyst,
		DisplayRole:   "Lead Malware Reverse Engineer",
		Organization:  domain.OrgMSSP,
		Expertise:     []string{"Reverse engineering", "Static analysis", "Dynamic analysis", "Sandbox evasion"},
		IncidentTypes: []string{"Malware Infection", "Ransomware", "Zero-Day Exploit", "Advanced Persistent Threat"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 1 hour",
	},
	{
		UserID:        "threat-001",
		Name:          "Rachel Goldman",
		Email:         "rachel.goldman@intel.mssp.com",
		Role:          domain.SpecialistThreatIntel,
		DisplayRole:   "Senior Threat Intelligence Analyst",
		Organization:  domain.OrgMSSP,
		Expertise:     []string{"APT tracking", "Threat actor attribution", "TTPs analysis", "Strategic intelligence"},
		IncidentTypes: []string{"Advanced Persistent Threat", "Nation-State Attack", "Supply Chain Attack", "Targeted Attack"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 1 hour",
	},
	{
		UserID:        "legal-001",
		Name:          "Victoria Blackwood",
		Email:         "victoria.blackwood@legal.client.com",
		Role:          domain.SpecialistLegalCounsel,
		DisplayRole:   "Senior Legal Counsel - Cybersecurity",
		Organization:  domain.OrgClient,
		Expertise:     []string{"Cyber law", "Data breach response", "Regulatory compliance", "Evidence handling"},
		IncidentTypes: []string{"Data Breach", "Data Exfiltration", "Privacy Violation", "Regulatory Incident"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 2 hours",
	},
	{
		UserID:        "legal-003",
		Name:          "Jennifer Lin",
		Email:         "jennifer.lin@legal.client.com",
		Role:          domain.SpecialistDataProtection,
		DisplayRole:   "Data Protection Officer",
		Organization:  domain.OrgClient,
		Expertise:     []string{"GDPR compliance", "UK GDPR & DPA 2018", "Data subject rights", "ICO breach notification"},
		IncidentTypes: []string{"Data Breach", "Privacy Violation", "Data Exfiltration", "Unauthorized Disclosure"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 1 hour",
	},
	{
		UserID:        "hr-001",
		Name:          "Patricia Wilson",
		Email:         "patricia.wilson@hr.client.com",
		Role:          domain.SpecialistHRDirector,
		DisplayRole:   "HR Director",
		Organization:  domain.OrgClient,
		Expertise:     []string{"Employee relations", "Disciplinary action", "Personnel records", "Dismissal procedures"},
		IncidentTypes: []string{"Insider Threat", "Policy Violation", "Workplace Misconduct", "Security Breach"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 1 hour",
	},
	{
		UserID:        "hr-002",
		Name:          "Robert Kumar",
		Email:         "robert.kumar@hr.client.com",
		Role:          domain.SpecialistHRInvestigator,
		DisplayRole:   "HR Investigations Specialist",
		Organization:  domain.OrgClient,
		Expertise:     []string{"Internal investigations", "Employee interviews", "Case documentation", "Misconduct analysis"},
		IncidentTypes: []string{"Insider Threat", "Policy Violation", "Fraud", "Data Misuse"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 2 hours",
	},
	{
		UserID:        "compliance-001",
		Name:          "Thomas Wright",
		Email:         "thomas.wright@compliance.client.com",
		Role:          domain.SpecialistComplianceOfficer,
		DisplayRole:   "Chief Compliance Officer",
		Organization:  domain.OrgClient,
		Expertise:     []string{"Regulatory compliance", "Risk assessment", "Audit management", "Policy enforcement"},
		IncidentTypes: []string{"Regulatory Incident", "Compliance Violation", "Data Breach", "Audit Finding"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 2 hours",
	},
	{
		UserID:        "insider-001",
		Name:          "Daniel Freeman",
		Email:         "daniel.freeman@insider.mssp.com",
		Role:          domain.SpecialistInsiderThreat,
		DisplayRole:   "Insider Threat Program Manager",
		Organization:  domain.OrgMSSP,
		Expertise:     []string{"Behavioral analysis", "UEBA", "Risk indicators", "Investigation coordination"},
		IncidentTypes: []string{"Insider Threat", "Data Exfiltration", "Policy Violation", "Suspicious Behavior"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 30 min",
	},
	{
		UserID:        "commander-001",
		Name:          "Colonel (Ret.) James Mitchell",
		Email:         "james.mitchell@command.mssp.com",
		Role:          domain.SpecialistIncidentCommander,
		DisplayRole:   "Chief Incident Commander",
		Organization:  domain.OrgMSSP,
		Expertise:     []string{"Crisis management", "Incident coordination", "Executive communication", "Strategic planning"},
		IncidentTypes: []string{"Major Incident", "Crisis Response", "Multi-vector Attack", "Executive Escalation"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 15 min",
	},
	{
		UserID:        "independent-hr-001",
		Name:          "Dr. Catherine Brooks",
		Email:         "contact@independenthr.secure",
		Role:          domain.SpecialistHRInvestigator,
		DisplayRole:   "Independent HR Investigations Consultant",
		Organization:  domain.OrgIndependent,
		Expertise:     []string{"Workplace investigations", "Conflict resolution", "Employee rights", "Crisis intervention"},
		IncidentTypes: []string{"Insider Threat", "Workplace Misconduct", "Policy Violation", "Employee Dispute"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 2 hours",
		HourlyRate:    rate(350),
	},
	{
		UserID:        "independent-legal-001",
		Name:          "Jonathan Hartley KC",
		Email:         "contact@independentlegal.secure",
		Role:          domain.SpecialistLegalCounsel,
		DisplayRole:   "Independent Cybersecurity Law Consultant",
		Organization:  domain.OrgIndependent,
		Expertise:     []string{"Cyber law", "Data breach litigation", "Regulatory defense", "Crisis legal strategy"},
		IncidentTypes: []string{"Data Breach", "Regulatory Incident", "Litigation Risk", "Privacy Violation"},
		Availability:  domain.AvailabilityAvailable,
		ResponseTime:  "< 1 hour",
		HourlyRate:    rate(650),
	},
	{
		UserID:        "independent-legal-004",
		Name:          "Prof. Alexander Nguyen",
		Email:         "contact@independentlegal.secure",
		Role:          domain.SpecialistLegalCounsel,
		DisplayRole:   "Independent Incident Response Legal Advisor",
		Organization:  domain.OrgIndependent,
		Expertise:     []string{"Incident response law", "Evidence preservation", "Legal holds", "Forensic admissibility"},
		IncidentTypes: []string{"Major Incident", "Evidence Collection", "Litigation Preparation", "Regulatory Investigation"},
		Availability:  domain.AvailabilityAway,
		ResponseTime:  "Next day",
		HourlyRate:    rate(550),
	},
}
