package sqlinline

const QInsertCampaign = `--sql 4f1c9d2a-8b3e-4a71-9c45-1d2e6f8a0b37
insert into campaigns(id, title, story, category, goal_cents, raised_cents, is_official, status, beneficiary_id, course_name, institute_name, version, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::bigint, 0, $6::boolean, $7::text, nullif($8::text, '')::uuid, $9::text, $10::text, 1, $11::timestamptz, now());
`

const QGetCampaign = `--sql 7d5a31fc-2e84-4b09-8f67-3a9c0d1e5b42
select id, title, story, category, goal_cents, raised_cents, is_official, status, beneficiary_id, course_name, institute_name, version, created_at
from campaigns
where id = $1::uuid;
`

const QListCampaignsByStatus = `--sql 1a8e4c6b-9f20-4d53-b7e1-5c2d8a3f9e04
select id, title, story, category, goal_cents, raised_cents, is_official, status, beneficiary_id, course_name, institute_name, version, created_at
from campaigns
where status = $1::text
order by created_at asc;
`

const QListCampaigns = `--sql c3b7f0e9-6d14-48a2-95c8-0e7a2b4d6f19
select id, title, story, category, goal_cents, raised_cents, is_official, status, beneficiary_id, course_name, institute_name, version, created_at
from campaigns
order by created_at asc;
`

const QApplyDonationToCampaign = `--sql 9e2d7a48-3c61-4f95-a0b3-8d5e1c7f2a60
update campaigns
set raised_cents = raised_cents + $1::bigint,
    status = $2::text,
    version = version + 1,
    updated_at = now()
where id = $3::uuid and version = $4::bigint;
`

const QUpdateCampaignStatus = `--sql 5b0c8e17-4a92-4d36-8e70-2f9b6c4d1a83
update campaigns
set status = $1::text,
    version = version + 1,
    updated_at = now()
where id = $2::uuid and version = $3::bigint;
`
